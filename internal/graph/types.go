package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/service"
)

func (b *builder) buildEnums() {
	b.userRoleEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "UserRole",
		Values: graphql.EnumValueConfigMap{
			"TEACHER": &graphql.EnumValueConfig{Value: "TEACHER"},
			"STUDENT": &graphql.EnumValueConfig{Value: "STUDENT"},
			"ADMIN":   &graphql.EnumValueConfig{Value: "ADMIN"},
		},
	})

	b.assignmentStatusEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "AssignmentStatus",
		Values: graphql.EnumValueConfigMap{
			"DRAFT":     &graphql.EnumValueConfig{Value: "DRAFT"},
			"PUBLISHED": &graphql.EnumValueConfig{Value: "PUBLISHED"},
			"GRADING":   &graphql.EnumValueConfig{Value: "GRADING"},
			"COMPLETED": &graphql.EnumValueConfig{Value: "COMPLETED"},
			"ARCHIVED":  &graphql.EnumValueConfig{Value: "ARCHIVED"},
		},
	})

	b.submissionStatusEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "SubmissionStatus",
		Values: graphql.EnumValueConfigMap{
			"NOT_SUBMITTED": &graphql.EnumValueConfig{Value: "NOT_SUBMITTED"},
			"SUBMITTED":     &graphql.EnumValueConfig{Value: "SUBMITTED"},
			"GRADED":        &graphql.EnumValueConfig{Value: "GRADED"},
			"LATE":          &graphql.EnumValueConfig{Value: "LATE"},
		},
	})
}

func (b *builder) buildTypes() {
	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(b.userRoleEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(models.User).Role), nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.analyticsType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Analytics",
		Fields: graphql.Fields{
			"assignmentId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"totalSubmissions":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"gradedSubmissions": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"averageScore":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"onTimeSubmissions": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"lateSubmissions":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"notSubmitted":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	b.courseType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Course",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"code":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"teacherId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"studentIds":  &graphql.Field{Type: graphql.NewList(graphql.ID)},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.assignmentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Assignment",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"dueDate":     &graphql.Field{Type: graphql.DateTime},
			"maxScore":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"status": &graphql.Field{
				Type: graphql.NewNonNull(b.assignmentStatusEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(models.Assignment).Status), nil
				},
			},
			"teacherId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"courseId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"attachments": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.submissionType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Submission",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"assignmentId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"studentId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"content":      &graphql.Field{Type: graphql.String},
			"attachments":  &graphql.Field{Type: graphql.NewList(graphql.String)},
			"status": &graphql.Field{
				Type: graphql.NewNonNull(b.submissionStatusEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(models.Submission).Status), nil
				},
			},
			"score": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if score := p.Source.(models.Submission).Score; score != nil {
						return *score, nil
					}
					return nil, nil
				},
			},
			"feedback": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if feedback := p.Source.(models.Submission).Feedback; feedback != nil {
						return *feedback, nil
					}
					return nil, nil
				},
			},
			"submittedAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if at := p.Source.(models.Submission).SubmittedAt; at != nil {
						return *at, nil
					}
					return nil, nil
				},
			},
			"gradedAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if at := p.Source.(models.Submission).GradedAt; at != nil {
						return *at, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.wireRelations()
}

// wireRelations attaches the lazy-join fields after all object types
// exist; Course, Assignment and Submission reference each other.
func (b *builder) wireRelations() {
	b.courseType.AddFieldConfig("teacher", &graphql.Field{
		Type: b.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.lookupUser(p, p.Source.(models.Course).TeacherID)
		},
	})
	b.courseType.AddFieldConfig("students", &graphql.Field{
		Type: graphql.NewList(b.userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			course := p.Source.(models.Course)
			students := make([]models.User, 0, len(course.StudentIDs))
			for _, studentID := range course.StudentIDs {
				// Dangling roster entries are dropped, not errors.
				if student, err := b.resolver.Users.Get(p.Context, studentID); err == nil {
					students = append(students, student)
				}
			}
			return students, nil
		},
	})
	b.courseType.AddFieldConfig("assignments", &graphql.Field{
		Type: graphql.NewList(b.assignmentType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			course := p.Source.(models.Course)
			return b.resolver.Assignments.List(p.Context, service.AssignmentFilter{CourseID: course.ID})
		},
	})

	b.assignmentType.AddFieldConfig("teacher", &graphql.Field{
		Type: b.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.lookupUser(p, p.Source.(models.Assignment).TeacherID)
		},
	})
	b.assignmentType.AddFieldConfig("course", &graphql.Field{
		Type: b.courseType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			course, err := b.resolver.Courses.Get(p.Context, p.Source.(models.Assignment).CourseID)
			if err != nil {
				return nil, nil
			}
			return course, nil
		},
	})
	b.assignmentType.AddFieldConfig("submissions", &graphql.Field{
		Type: graphql.NewList(b.submissionType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			assignment := p.Source.(models.Assignment)
			return b.resolver.Submissions.List(p.Context, service.SubmissionFilter{AssignmentID: assignment.ID})
		},
	})
	b.assignmentType.AddFieldConfig("analytics", &graphql.Field{
		Type: b.analyticsType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			analytics, err := b.resolver.Analytics.ForAssignment(p.Context, p.Source.(models.Assignment).ID)
			if err != nil || analytics == nil {
				return nil, err
			}
			return *analytics, nil
		},
	})

	b.submissionType.AddFieldConfig("assignment", &graphql.Field{
		Type: b.assignmentType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			assignment, err := b.resolver.Assignments.Get(p.Context, p.Source.(models.Submission).AssignmentID)
			if err != nil {
				return nil, nil
			}
			return assignment, nil
		},
	})
	b.submissionType.AddFieldConfig("student", &graphql.Field{
		Type: b.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.lookupUser(p, p.Source.(models.Submission).StudentID)
		},
	})
}

func (b *builder) lookupUser(p graphql.ResolveParams, id string) (interface{}, error) {
	user, err := b.resolver.Users.Get(p.Context, id)
	if err != nil {
		return nil, nil
	}
	return user, nil
}
