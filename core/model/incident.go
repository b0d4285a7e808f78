package model

// Incident is one traffic incident located on the spatial grid.
type Incident struct {
	CellID        string  `json:"cell_id" yaml:"cell_id"`
	Lat           float64 `json:"lat" yaml:"lat"`
	Lon           float64 `json:"lon" yaml:"lon"`
	Neighborhood  string  `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty"`
	IssueReported string  `json:"issue_reported,omitempty" yaml:"issue_reported,omitempty"`
}

// CellRisk is one heat-grid cell with the model risk score attached.
type CellRisk struct {
	CellID    string  `json:"cell_id" yaml:"cell_id"`
	Lat       float64 `json:"lat" yaml:"lat"`
	Lon       float64 `json:"lon" yaml:"lon"`
	RiskScore float64 `json:"risk_score" yaml:"risk_score"`
}
