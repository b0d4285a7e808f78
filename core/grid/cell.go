package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cell identifiers key one square of the fixed spatial partition and have the
// form "{latBin}_{lonBin}" where both bins are (possibly negative) integers.

var (
	// ErrInvalidCellIDFormat reports a cell id that does not split into
	// exactly two tokens.
	ErrInvalidCellIDFormat = errors.New("invalid cell id format")
	// ErrInvalidCellIDIndices reports a cell id whose tokens are not integers.
	ErrInvalidCellIDIndices = errors.New("invalid cell id indices")
)

// ParseCellID extracts the lat and lon bins from a cell id.
func ParseCellID(cellID string) (latBin, lonBin int, err error) {
	parts := strings.Split(cellID, "_")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellIDFormat, cellID)
	}
	latBin, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellIDIndices, cellID)
	}
	lonBin, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellIDIndices, cellID)
	}
	return latBin, lonBin, nil
}

// FormatCellID is the inverse of ParseCellID.
func FormatCellID(latBin, lonBin int) string {
	return strconv.Itoa(latBin) + "_" + strconv.Itoa(lonBin)
}

// ManhattanDistance returns the grid distance |lat1-lat2| + |lon1-lon2|
// between two cells.
func ManhattanDistance(a, b string) (int, error) {
	lat1, lon1, err := ParseCellID(a)
	if err != nil {
		return 0, err
	}
	lat2, lon2, err := ParseCellID(b)
	if err != nil {
		return 0, err
	}
	return abs(lat1-lat2) + abs(lon1-lon2), nil
}

// NeighborsWithinRadius returns every cell whose Manhattan distance from
// cellID is at most radius. Radius zero yields only the input cell.
func NeighborsWithinRadius(cellID string, radius int) (map[string]struct{}, error) {
	if radius < 0 {
		return nil, fmt.Errorf("radius must be non-negative, got %d", radius)
	}
	latBin, lonBin, err := ParseCellID(cellID)
	if err != nil {
		return nil, err
	}
	cells := make(map[string]struct{}, 2*radius*radius+2*radius+1)
	for dLat := -radius; dLat <= radius; dLat++ {
		rem := radius - abs(dLat)
		for dLon := -rem; dLon <= rem; dLon++ {
			cells[FormatCellID(latBin+dLat, lonBin+dLon)] = struct{}{}
		}
	}
	return cells, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
