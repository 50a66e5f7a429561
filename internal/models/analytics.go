package models

// Analytics aggregates submission statistics for a single assignment.
// It is derived on every read and never stored.
type Analytics struct {
	AssignmentID      string  `json:"assignmentId"`
	TotalSubmissions  int     `json:"totalSubmissions"`
	GradedSubmissions int     `json:"gradedSubmissions"`
	AverageScore      float64 `json:"averageScore"`
	OnTimeSubmissions int     `json:"onTimeSubmissions"`
	LateSubmissions   int     `json:"lateSubmissions"`
	// NotSubmitted is the course roster size minus the number of
	// submissions. It can go negative when students outside the roster
	// submit; the raw value is kept so the anomaly stays visible.
	NotSubmitted int `json:"notSubmitted"`
}
