package models

import "time"

// Course represents a class a teacher owns and students enroll into.
type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	TeacherID   string    `json:"teacherId"`
	StudentIDs  []string  `json:"studentIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RosterSize returns the number of enrolled students. It is the
// denominator for completion-rate analytics.
func (c Course) RosterSize() int {
	return len(c.StudentIDs)
}
