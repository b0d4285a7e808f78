package grid

import (
	"errors"
	"testing"
)

func TestParseCellID_RoundTrip(t *testing.T) {
	cases := []struct{ lat, lon int }{
		{0, 0},
		{12, 34},
		{6050, -19543},
		{-3, -7},
		{-1, 0},
	}
	for _, c := range cases {
		id := FormatCellID(c.lat, c.lon)
		lat, lon, err := ParseCellID(id)
		if err != nil {
			t.Fatalf("parse %q: %v", id, err)
		}
		if lat != c.lat || lon != c.lon {
			t.Errorf("round trip %q: got (%d,%d), want (%d,%d)", id, lat, lon, c.lat, c.lon)
		}
	}
}

func TestParseCellID_Errors(t *testing.T) {
	cases := []struct {
		id   string
		want error
	}{
		{"12", ErrInvalidCellIDFormat},
		{"12_34_56", ErrInvalidCellIDFormat},
		{"", ErrInvalidCellIDFormat},
		{"a_34", ErrInvalidCellIDIndices},
		{"12_b", ErrInvalidCellIDIndices},
		{"12.5_34", ErrInvalidCellIDIndices},
		{"12__34", ErrInvalidCellIDFormat},
	}
	for _, c := range cases {
		_, _, err := ParseCellID(c.id)
		if !errors.Is(err, c.want) {
			t.Errorf("parse %q: got %v, want %v", c.id, err, c.want)
		}
	}
}

func TestManhattanDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"6050_-19543", "6050_-19543", 0},
		{"6050_-19543", "6051_-19543", 1},
		{"6050_-19543", "6052_-19545", 4},
		{"0_0", "-2_3", 5},
	}
	for _, c := range cases {
		got, err := ManhattanDistance(c.a, c.b)
		if err != nil {
			t.Fatalf("distance(%q,%q): %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("distance(%q,%q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}

	if _, err := ManhattanDistance("bad", "0_0"); !errors.Is(err, ErrInvalidCellIDFormat) {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestNeighborsWithinRadius_Diamond(t *testing.T) {
	// The Manhattan diamond of radius r contains 2r^2+2r+1 cells.
	for r := 0; r <= 4; r++ {
		cells, err := NeighborsWithinRadius("10_-5", r)
		if err != nil {
			t.Fatalf("radius %d: %v", r, err)
		}
		want := 2*r*r + 2*r + 1
		if len(cells) != want {
			t.Errorf("radius %d: got %d cells, want %d", r, len(cells), want)
		}
		for cell := range cells {
			d, err := ManhattanDistance("10_-5", cell)
			if err != nil {
				t.Fatalf("distance: %v", err)
			}
			if d > r {
				t.Errorf("radius %d: cell %s at distance %d", r, cell, d)
			}
		}
	}
}

func TestNeighborsWithinRadius_ZeroIsIdentity(t *testing.T) {
	cells, err := NeighborsWithinRadius("12_34", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("got %d cells, want 1", len(cells))
	}
	if _, ok := cells["12_34"]; !ok {
		t.Errorf("radius 0 should contain only the input cell")
	}
}

func TestNeighborsWithinRadius_ExcludesChebyshevCorners(t *testing.T) {
	cells, err := NeighborsWithinRadius("0_0", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, corner := range []string{"1_1", "1_-1", "-1_1", "-1_-1"} {
		if _, ok := cells[corner]; ok {
			t.Errorf("diagonal cell %s must not be within Manhattan radius 1", corner)
		}
	}
}

func TestNeighborsWithinRadius_NegativeRadius(t *testing.T) {
	if _, err := NeighborsWithinRadius("0_0", -1); err == nil {
		t.Fatal("expected error for negative radius")
	}
}
