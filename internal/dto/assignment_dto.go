package dto

// AssignmentCreateInput describes the payload for creating a new
// assignment. Status is always forced to DRAFT by the service, so the
// input carries none.
type AssignmentCreateInput struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate" validate:"required"`
	MaxScore    int      `json:"maxScore" validate:"required"`
	TeacherID   string   `json:"teacherId" validate:"required"`
	CourseID    string   `json:"courseId" validate:"required"`
	Attachments []string `json:"attachments"`
}

// AssignmentUpdateInput describes a partial update. Nil fields are
// left untouched so omitted and explicitly-set values stay
// distinguishable.
type AssignmentUpdateInput struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"dueDate"`
	MaxScore    *int      `json:"maxScore"`
	Status      *string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED GRADING COMPLETED ARCHIVED"`
	Attachments *[]string `json:"attachments"`
}
