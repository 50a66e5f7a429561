package dto

// CourseCreateInput describes the payload for creating a course.
type CourseCreateInput struct {
	Name        string   `json:"name" validate:"required,min=1"`
	Code        string   `json:"code" validate:"required"`
	Description string   `json:"description"`
	TeacherID   string   `json:"teacherId" validate:"required"`
	StudentIDs  []string `json:"studentIds"`
}

// CourseUpdateInput describes a partial update to a course.
type CourseUpdateInput struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Code        *string   `json:"code"`
	Description *string   `json:"description"`
	TeacherID   *string   `json:"teacherId"`
	StudentIDs  *[]string `json:"studentIds"`
}
