package models

import "time"

// SubmissionStatus tracks the state of a student's submission.
type SubmissionStatus string

const (
	SubmissionStatusNotSubmitted SubmissionStatus = "NOT_SUBMITTED"
	SubmissionStatusSubmitted    SubmissionStatus = "SUBMITTED"
	SubmissionStatusGraded       SubmissionStatus = "GRADED"
	SubmissionStatusLate         SubmissionStatus = "LATE"
)

// Submission represents student work handed in for an assignment.
type Submission struct {
	ID           string           `json:"id"`
	AssignmentID string           `json:"assignmentId"`
	StudentID    string           `json:"studentId"`
	Content      string           `json:"content"`
	Attachments  []string         `json:"attachments"`
	Status       SubmissionStatus `json:"status"`
	Score        *float64         `json:"score"`
	Feedback     *string          `json:"feedback"`
	SubmittedAt  *time.Time       `json:"submittedAt"`
	GradedAt     *time.Time       `json:"gradedAt"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// IsGraded reports whether the submission has a final score.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

// IsOnTime reports whether the submission was handed in at or before
// the due date. Submissions without a submission timestamp are neither
// on time nor late.
func (s Submission) IsOnTime(dueDate time.Time) bool {
	return s.SubmittedAt != nil && !s.SubmittedAt.After(dueDate)
}

// IsLate reports whether the submission was handed in strictly after
// the due date.
func (s Submission) IsLate(dueDate time.Time) bool {
	return s.SubmittedAt != nil && s.SubmittedAt.After(dueDate)
}
