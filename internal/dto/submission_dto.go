package dto

// SubmissionCreateInput describes the payload for handing in work.
// Status and submittedAt are stamped by the service.
type SubmissionCreateInput struct {
	AssignmentID string   `json:"assignmentId" validate:"required"`
	StudentID    string   `json:"studentId" validate:"required"`
	Content      string   `json:"content"`
	Attachments  []string `json:"attachments"`
}

// SubmissionUpdateInput describes a partial update to a submission.
type SubmissionUpdateInput struct {
	Content     *string   `json:"content"`
	Attachments *[]string `json:"attachments"`
	Status      *string   `json:"status" validate:"omitempty,oneof=NOT_SUBMITTED SUBMITTED GRADED LATE"`
	Feedback    *string   `json:"feedback"`
}

// GradeInput carries a grading decision. Score ranges are deliberately
// not validated against the assignment's maxScore; out-of-range values
// are accepted and show up in analytics as-is.
type GradeInput struct {
	Score    float64 `json:"score"`
	Feedback *string `json:"feedback"`
}
