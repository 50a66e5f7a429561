// Package graph assembles the GraphQL schema over the service layer.
// The schema is built by hand so the wire contract stays in one place
// and every resolver is an explicit function.
package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/classboard/classboard-api/internal/dto"
	"github.com/classboard/classboard-api/internal/service"
)

// Resolver groups the services every resolver closure reaches into.
type Resolver struct {
	Users       service.UserService
	Courses     service.CourseService
	Assignments service.AssignmentService
	Submissions service.SubmissionService
	Analytics   service.AnalyticsService
}

type builder struct {
	resolver Resolver

	userRoleEnum         *graphql.Enum
	assignmentStatusEnum *graphql.Enum
	submissionStatusEnum *graphql.Enum

	userType       *graphql.Object
	courseType     *graphql.Object
	assignmentType *graphql.Object
	submissionType *graphql.Object
	analyticsType  *graphql.Object

	assignmentInput       *graphql.InputObject
	assignmentUpdateInput *graphql.InputObject
	submissionInput       *graphql.InputObject
	submissionUpdateInput *graphql.InputObject
	courseInput           *graphql.InputObject
	courseUpdateInput     *graphql.InputObject
}

// NewSchema builds the executable schema for the given resolver set.
func NewSchema(resolver Resolver) (graphql.Schema, error) {
	b := &builder{resolver: resolver}
	b.buildEnums()
	b.buildTypes()
	b.buildInputs()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        b.buildQuery(),
		Mutation:     b.buildMutation(),
		Subscription: b.buildSubscription(),
	})
}

func (b *builder) buildQuery() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"user": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := b.resolver.Users.Get(p.Context, p.Args["id"].(string))
					if errors.Is(err, service.ErrUserNotFound) {
						return nil, nil
					}
					return user, err
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(b.userType),
				Args: graphql.FieldConfigArgument{
					"role": &graphql.ArgumentConfig{Type: b.userRoleEnum},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolver.Users.List(p.Context, stringArg(p.Args, "role"))
				},
			},
			"assignment": &graphql.Field{
				Type: b.assignmentType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					assignment, err := b.resolver.Assignments.Get(p.Context, p.Args["id"].(string))
					if errors.Is(err, service.ErrAssignmentNotFound) {
						return nil, nil
					}
					return assignment, err
				},
			},
			"assignments": &graphql.Field{
				Type: graphql.NewList(b.assignmentType),
				Args: graphql.FieldConfigArgument{
					"teacherId": &graphql.ArgumentConfig{Type: graphql.ID},
					"courseId":  &graphql.ArgumentConfig{Type: graphql.ID},
					"status":    &graphql.ArgumentConfig{Type: b.assignmentStatusEnum},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolver.Assignments.List(p.Context, service.AssignmentFilter{
						TeacherID: stringArg(p.Args, "teacherId"),
						CourseID:  stringArg(p.Args, "courseId"),
						Status:    stringArg(p.Args, "status"),
					})
				},
			},
			"submission": &graphql.Field{
				Type: b.submissionType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					submission, err := b.resolver.Submissions.Get(p.Context, p.Args["id"].(string))
					if errors.Is(err, service.ErrSubmissionNotFound) {
						return nil, nil
					}
					return submission, err
				},
			},
			"submissions": &graphql.Field{
				Type: graphql.NewList(b.submissionType),
				Args: graphql.FieldConfigArgument{
					"assignmentId": &graphql.ArgumentConfig{Type: graphql.ID},
					"studentId":    &graphql.ArgumentConfig{Type: graphql.ID},
					"status":       &graphql.ArgumentConfig{Type: b.submissionStatusEnum},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolver.Submissions.List(p.Context, service.SubmissionFilter{
						AssignmentID: stringArg(p.Args, "assignmentId"),
						StudentID:    stringArg(p.Args, "studentId"),
						Status:       stringArg(p.Args, "status"),
					})
				},
			},
			"course": &graphql.Field{
				Type: b.courseType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					course, err := b.resolver.Courses.Get(p.Context, p.Args["id"].(string))
					if errors.Is(err, service.ErrCourseNotFound) {
						return nil, nil
					}
					return course, err
				},
			},
			"courses": &graphql.Field{
				Type: graphql.NewList(b.courseType),
				Args: graphql.FieldConfigArgument{
					"teacherId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolver.Courses.List(p.Context, stringArg(p.Args, "teacherId"))
				},
			},
			"assignmentAnalytics": &graphql.Field{
				Type: b.analyticsType,
				Args: graphql.FieldConfigArgument{
					"assignmentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					analytics, err := b.resolver.Analytics.ForAssignment(p.Context, p.Args["assignmentId"].(string))
					if err != nil || analytics == nil {
						return nil, err
					}
					return *analytics, nil
				},
			},
		},
	})
}

func (b *builder) buildMutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAssignment": &graphql.Field{
				Type: b.assignmentType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.assignmentInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeAssignmentCreate(p.Args["input"].(map[string]interface{}))
					return b.resolver.Assignments.Create(p.Context, input)
				},
			},
			"updateAssignment": &graphql.Field{
				Type: b.assignmentType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.assignmentUpdateInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeAssignmentUpdate(p.Args["input"].(map[string]interface{}))
					return b.resolver.Assignments.Update(p.Context, p.Args["id"].(string), input)
				},
			},
			"deleteAssignment": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolver.Assignments.Delete(p.Context, p.Args["id"].(string))
				},
			},
			"publishAssignment": &graphql.Field{
				Type: b.assignmentType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolver.Assignments.Publish(p.Context, p.Args["id"].(string))
				},
			},
			"createSubmission": &graphql.Field{
				Type: b.submissionType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.submissionInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeSubmissionCreate(p.Args["input"].(map[string]interface{}))
					return b.resolver.Submissions.Create(p.Context, input)
				},
			},
			"updateSubmission": &graphql.Field{
				Type: b.submissionType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.submissionUpdateInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeSubmissionUpdate(p.Args["input"].(map[string]interface{}))
					return b.resolver.Submissions.Update(p.Context, p.Args["id"].(string), input)
				},
			},
			"gradeSubmission": &graphql.Field{
				Type: b.submissionType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"score":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"feedback": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := dto.GradeInput{
						Score:    floatArg(p.Args, "score"),
						Feedback: stringPtrArg(p.Args, "feedback"),
					}
					return b.resolver.Submissions.Grade(p.Context, p.Args["id"].(string), input)
				},
			},
			"createCourse": &graphql.Field{
				Type: b.courseType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.courseInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeCourseCreate(p.Args["input"].(map[string]interface{}))
					return b.resolver.Courses.Create(p.Context, input)
				},
			},
			"updateCourse": &graphql.Field{
				Type: b.courseType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.courseUpdateInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := decodeCourseUpdate(p.Args["input"].(map[string]interface{}))
					return b.resolver.Courses.Update(p.Context, p.Args["id"].(string), input)
				},
			},
		},
	})
}

// buildSubscription declares the subscription contract for schema
// introspection. Execution happens over the websocket endpoint, which
// consumes the subscription service directly rather than going through
// graphql.Do.
func (b *builder) buildSubscription() *graphql.Object {
	passthrough := func(p graphql.ResolveParams) (interface{}, error) {
		return p.Source, nil
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"assignmentUpdated": &graphql.Field{
				Type: b.assignmentType,
				Args: graphql.FieldConfigArgument{
					"teacherId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: passthrough,
			},
			"submissionCreated": &graphql.Field{
				Type: b.submissionType,
				Args: graphql.FieldConfigArgument{
					"assignmentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: passthrough,
			},
			"submissionGraded": &graphql.Field{
				Type: b.submissionType,
				Args: graphql.FieldConfigArgument{
					"studentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: passthrough,
			},
		},
	})
}

func floatArg(arg map[string]interface{}, key string) float64 {
	switch value := arg[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	default:
		return 0
	}
}
