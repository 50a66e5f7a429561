package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/classboard/classboard-api/internal/dto"
	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/pubsub"
	"github.com/classboard/classboard-api/internal/store"
)

// AssignmentFilter narrows assignment listings. Empty fields pass
// everything through; set fields are combined with AND.
type AssignmentFilter struct {
	TeacherID string
	CourseID  string
	Status    string
}

// AssignmentService owns the assignment lifecycle. Every successful
// write publishes an ASSIGNMENT_UPDATED event, except Delete, which
// has no subscribers interested in removals.
type AssignmentService interface {
	Get(ctx context.Context, id string) (models.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error)
	Create(ctx context.Context, input dto.AssignmentCreateInput) (models.Assignment, error)
	Update(ctx context.Context, id string, input dto.AssignmentUpdateInput) (models.Assignment, error)
	Publish(ctx context.Context, id string) (models.Assignment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type assignmentService struct {
	store     *store.Store
	bus       *pubsub.Bus
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(store *store.Store, bus *pubsub.Bus, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		store:     store,
		bus:       bus,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		tracer:    otel.Tracer("github.com/classboard/classboard-api/internal/service/assignment"),
		now:       time.Now,
	}
}

func (s *assignmentService) Get(_ context.Context, id string) (models.Assignment, error) {
	assignment, ok := s.store.GetAssignment(id)
	if !ok {
		return models.Assignment{}, ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *assignmentService) List(_ context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	assignments := s.store.ListAssignments()
	filtered := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if filter.TeacherID != "" && assignment.TeacherID != filter.TeacherID {
			continue
		}
		if filter.CourseID != "" && assignment.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && string(assignment.Status) != filter.Status {
			continue
		}
		filtered = append(filtered, assignment)
	}
	return filtered, nil
}

func (s *assignmentService) Create(ctx context.Context, input dto.AssignmentCreateInput) (models.Assignment, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.Assignment{}, err
	}

	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return models.Assignment{}, err
	}

	_, span := s.tracer.Start(ctx, "assignments.create", trace.WithAttributes(
		attribute.String("assignment.teacher_id", input.TeacherID),
		attribute.String("assignment.course_id", input.CourseID),
	))
	defer span.End()

	now := s.now().UTC()
	assignment := models.Assignment{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: s.sanitizer.Sanitize(input.Description),
		DueDate:     dueDate,
		MaxScore:    input.MaxScore,
		Status:      models.AssignmentStatusDraft,
		TeacherID:   input.TeacherID,
		CourseID:    input.CourseID,
		Attachments: append([]string{}, input.Attachments...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.PutAssignment(assignment)
	s.bus.Publish(pubsub.TopicAssignmentUpdated, pubsub.AssignmentEvent{Assignment: assignment})

	s.logger.Info().Str("assignment_id", assignment.ID).Str("teacher_id", assignment.TeacherID).Msg("assignment created")
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id string, input dto.AssignmentUpdateInput) (models.Assignment, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.Assignment{}, err
	}

	assignment, ok := s.store.GetAssignment(id)
	if !ok {
		return models.Assignment{}, ErrAssignmentNotFound
	}

	_, span := s.tracer.Start(ctx, "assignments.update", trace.WithAttributes(
		attribute.String("assignment.id", id),
	))
	defer span.End()

	if input.Title != nil {
		assignment.Title = *input.Title
	}
	if input.Description != nil {
		assignment.Description = s.sanitizer.Sanitize(*input.Description)
	}
	if input.DueDate != nil {
		dueDate, err := parseDate(*input.DueDate)
		if err != nil {
			return models.Assignment{}, err
		}
		assignment.DueDate = dueDate
	}
	if input.MaxScore != nil {
		assignment.MaxScore = *input.MaxScore
	}
	if input.Status != nil {
		assignment.Status = models.AssignmentStatus(*input.Status)
	}
	if input.Attachments != nil {
		assignment.Attachments = append([]string{}, (*input.Attachments)...)
	}
	assignment.UpdatedAt = s.now().UTC()
	s.store.PutAssignment(assignment)
	s.bus.Publish(pubsub.TopicAssignmentUpdated, pubsub.AssignmentEvent{Assignment: assignment})

	return assignment, nil
}

func (s *assignmentService) Publish(ctx context.Context, id string) (models.Assignment, error) {
	assignment, ok := s.store.GetAssignment(id)
	if !ok {
		return models.Assignment{}, ErrAssignmentNotFound
	}

	_, span := s.tracer.Start(ctx, "assignments.publish", trace.WithAttributes(
		attribute.String("assignment.id", id),
	))
	defer span.End()

	assignment.Status = models.AssignmentStatusPublished
	assignment.UpdatedAt = s.now().UTC()
	s.store.PutAssignment(assignment)
	s.bus.Publish(pubsub.TopicAssignmentUpdated, pubsub.AssignmentEvent{Assignment: assignment})

	s.logger.Info().Str("assignment_id", id).Msg("assignment published")
	return assignment, nil
}

// Delete removes an assignment and cascades to its submissions. It
// reports whether the assignment existed rather than failing on a
// missing id.
func (s *assignmentService) Delete(ctx context.Context, id string) (bool, error) {
	_, span := s.tracer.Start(ctx, "assignments.delete", trace.WithAttributes(
		attribute.String("assignment.id", id),
	))
	defer span.End()

	existed := s.store.DeleteAssignment(id)
	submissions := s.store.SubmissionsByAssignment(id)
	for _, submission := range submissions {
		s.store.DeleteSubmission(submission.ID)
	}

	if existed {
		s.logger.Info().Str("assignment_id", id).Int("cascaded_submissions", len(submissions)).Msg("assignment deleted")
	}
	return existed, nil
}
