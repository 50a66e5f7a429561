package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/classboard/classboard-api/internal/dto"
)

func (b *builder) buildInputs() {
	b.assignmentInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AssignmentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dueDate":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"maxScore":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"teacherId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"courseId":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"attachments": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		},
	})

	b.assignmentUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AssignmentUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dueDate":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"maxScore":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"status":      &graphql.InputObjectFieldConfig{Type: b.assignmentStatusEnum},
			"attachments": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		},
	})

	b.submissionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SubmissionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"assignmentId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"studentId":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"content":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"attachments":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		},
	})

	b.submissionUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SubmissionUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"content":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"attachments": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"status":      &graphql.InputObjectFieldConfig{Type: b.submissionStatusEnum},
			"feedback":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	b.courseInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CourseInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"code":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"teacherId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"studentIds":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.ID)},
		},
	})

	b.courseUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CourseUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"code":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"teacherId":   &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"studentIds":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.ID)},
		},
	})
}

// The decode helpers below map GraphQL argument maps onto the typed
// input descriptors field by field, so omitted fields stay nil.

func decodeAssignmentCreate(arg map[string]interface{}) dto.AssignmentCreateInput {
	return dto.AssignmentCreateInput{
		Title:       stringArg(arg, "title"),
		Description: stringArg(arg, "description"),
		DueDate:     stringArg(arg, "dueDate"),
		MaxScore:    intArg(arg, "maxScore"),
		TeacherID:   stringArg(arg, "teacherId"),
		CourseID:    stringArg(arg, "courseId"),
		Attachments: stringSliceArg(arg, "attachments"),
	}
}

func decodeAssignmentUpdate(arg map[string]interface{}) dto.AssignmentUpdateInput {
	return dto.AssignmentUpdateInput{
		Title:       stringPtrArg(arg, "title"),
		Description: stringPtrArg(arg, "description"),
		DueDate:     stringPtrArg(arg, "dueDate"),
		MaxScore:    intPtrArg(arg, "maxScore"),
		Status:      stringPtrArg(arg, "status"),
		Attachments: stringSlicePtrArg(arg, "attachments"),
	}
}

func decodeSubmissionCreate(arg map[string]interface{}) dto.SubmissionCreateInput {
	return dto.SubmissionCreateInput{
		AssignmentID: stringArg(arg, "assignmentId"),
		StudentID:    stringArg(arg, "studentId"),
		Content:      stringArg(arg, "content"),
		Attachments:  stringSliceArg(arg, "attachments"),
	}
}

func decodeSubmissionUpdate(arg map[string]interface{}) dto.SubmissionUpdateInput {
	return dto.SubmissionUpdateInput{
		Content:     stringPtrArg(arg, "content"),
		Attachments: stringSlicePtrArg(arg, "attachments"),
		Status:      stringPtrArg(arg, "status"),
		Feedback:    stringPtrArg(arg, "feedback"),
	}
}

func decodeCourseCreate(arg map[string]interface{}) dto.CourseCreateInput {
	return dto.CourseCreateInput{
		Name:        stringArg(arg, "name"),
		Code:        stringArg(arg, "code"),
		Description: stringArg(arg, "description"),
		TeacherID:   stringArg(arg, "teacherId"),
		StudentIDs:  stringSliceArg(arg, "studentIds"),
	}
}

func decodeCourseUpdate(arg map[string]interface{}) dto.CourseUpdateInput {
	return dto.CourseUpdateInput{
		Name:        stringPtrArg(arg, "name"),
		Code:        stringPtrArg(arg, "code"),
		Description: stringPtrArg(arg, "description"),
		TeacherID:   stringPtrArg(arg, "teacherId"),
		StudentIDs:  stringSlicePtrArg(arg, "studentIds"),
	}
}

func stringArg(arg map[string]interface{}, key string) string {
	if value, ok := arg[key].(string); ok {
		return value
	}
	return ""
}

func stringPtrArg(arg map[string]interface{}, key string) *string {
	if value, ok := arg[key].(string); ok {
		return &value
	}
	return nil
}

func intArg(arg map[string]interface{}, key string) int {
	if value, ok := arg[key].(int); ok {
		return value
	}
	return 0
}

func intPtrArg(arg map[string]interface{}, key string) *int {
	if value, ok := arg[key].(int); ok {
		return &value
	}
	return nil
}

func stringSliceArg(arg map[string]interface{}, key string) []string {
	raw, ok := arg[key].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if value, ok := item.(string); ok {
			values = append(values, value)
		}
	}
	return values
}

func stringSlicePtrArg(arg map[string]interface{}, key string) *[]string {
	if _, ok := arg[key]; !ok {
		return nil
	}
	values := stringSliceArg(arg, key)
	return &values
}
