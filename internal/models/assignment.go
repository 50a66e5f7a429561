package models

import "time"

// AssignmentStatus tracks an assignment through its lifecycle. Only the
// DRAFT -> PUBLISHED transition is driven by a dedicated operation;
// the remaining values may be set freely through updates.
type AssignmentStatus string

const (
	AssignmentStatusDraft     AssignmentStatus = "DRAFT"
	AssignmentStatusPublished AssignmentStatus = "PUBLISHED"
	AssignmentStatusGrading   AssignmentStatus = "GRADING"
	AssignmentStatusCompleted AssignmentStatus = "COMPLETED"
	AssignmentStatusArchived  AssignmentStatus = "ARCHIVED"
)

// Assignment represents a piece of work a teacher hands out to a course.
type Assignment struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     time.Time        `json:"dueDate"`
	MaxScore    int              `json:"maxScore"`
	Status      AssignmentStatus `json:"status"`
	TeacherID   string           `json:"teacherId"`
	CourseID    string           `json:"courseId"`
	Attachments []string         `json:"attachments"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
