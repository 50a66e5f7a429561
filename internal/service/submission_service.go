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

// SubmissionFilter narrows submission listings. Empty fields pass
// everything through; set fields are combined with AND.
type SubmissionFilter struct {
	AssignmentID string
	StudentID    string
	Status       string
}

// SubmissionService owns the submission lifecycle. Create and Grade
// publish events; Update does not, since nothing in the product listens
// for plain edits, only hand-ins and grades.
type SubmissionService interface {
	Get(ctx context.Context, id string) (models.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	Create(ctx context.Context, input dto.SubmissionCreateInput) (models.Submission, error)
	Update(ctx context.Context, id string, input dto.SubmissionUpdateInput) (models.Submission, error)
	Grade(ctx context.Context, id string, input dto.GradeInput) (models.Submission, error)
}

type submissionService struct {
	store     *store.Store
	bus       *pubsub.Bus
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(store *store.Store, bus *pubsub.Bus, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		store:     store,
		bus:       bus,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "submission_service").Logger(),
		tracer:    otel.Tracer("github.com/classboard/classboard-api/internal/service/submission"),
		now:       time.Now,
	}
}

func (s *submissionService) Get(_ context.Context, id string) (models.Submission, error) {
	submission, ok := s.store.GetSubmission(id)
	if !ok {
		return models.Submission{}, ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *submissionService) List(_ context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	submissions := s.store.ListSubmissions()
	filtered := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if filter.AssignmentID != "" && submission.AssignmentID != filter.AssignmentID {
			continue
		}
		if filter.StudentID != "" && submission.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && string(submission.Status) != filter.Status {
			continue
		}
		filtered = append(filtered, submission)
	}
	return filtered, nil
}

func (s *submissionService) Create(ctx context.Context, input dto.SubmissionCreateInput) (models.Submission, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.Submission{}, err
	}

	_, span := s.tracer.Start(ctx, "submissions.create", trace.WithAttributes(
		attribute.String("submission.assignment_id", input.AssignmentID),
		attribute.String("submission.student_id", input.StudentID),
	))
	defer span.End()

	now := s.now().UTC()
	submittedAt := now
	submission := models.Submission{
		ID:           uuid.NewString(),
		AssignmentID: input.AssignmentID,
		StudentID:    input.StudentID,
		Content:      s.sanitizer.Sanitize(input.Content),
		Attachments:  append([]string{}, input.Attachments...),
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  &submittedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.store.PutSubmission(submission)
	s.bus.Publish(pubsub.TopicSubmissionCreated, pubsub.SubmissionCreatedEvent{Submission: submission})

	s.logger.Info().Str("submission_id", submission.ID).Str("assignment_id", submission.AssignmentID).Msg("submission created")
	return submission, nil
}

func (s *submissionService) Update(_ context.Context, id string, input dto.SubmissionUpdateInput) (models.Submission, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.Submission{}, err
	}

	submission, ok := s.store.GetSubmission(id)
	if !ok {
		return models.Submission{}, ErrSubmissionNotFound
	}

	if input.Content != nil {
		submission.Content = s.sanitizer.Sanitize(*input.Content)
	}
	if input.Attachments != nil {
		submission.Attachments = append([]string{}, (*input.Attachments)...)
	}
	if input.Status != nil {
		submission.Status = models.SubmissionStatus(*input.Status)
	}
	if input.Feedback != nil {
		feedback := s.sanitizer.Sanitize(*input.Feedback)
		submission.Feedback = &feedback
	}
	submission.UpdatedAt = s.now().UTC()
	s.store.PutSubmission(submission)

	return submission, nil
}

func (s *submissionService) Grade(ctx context.Context, id string, input dto.GradeInput) (models.Submission, error) {
	submission, ok := s.store.GetSubmission(id)
	if !ok {
		return models.Submission{}, ErrSubmissionNotFound
	}

	_, span := s.tracer.Start(ctx, "submissions.grade", trace.WithAttributes(
		attribute.String("submission.id", id),
		attribute.Float64("submission.score", input.Score),
	))
	defer span.End()

	now := s.now().UTC()
	score := input.Score
	submission.Score = &score
	if input.Feedback != nil {
		feedback := s.sanitizer.Sanitize(*input.Feedback)
		submission.Feedback = &feedback
	}
	submission.Status = models.SubmissionStatusGraded
	submission.GradedAt = &now
	submission.UpdatedAt = now
	s.store.PutSubmission(submission)
	s.bus.Publish(pubsub.TopicSubmissionGraded, pubsub.SubmissionGradedEvent{Submission: submission})

	s.logger.Info().Str("submission_id", id).Float64("score", score).Msg("submission graded")
	return submission, nil
}
