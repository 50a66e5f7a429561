package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/store"
)

// AnalyticsService derives per-assignment statistics from raw
// submissions and the course roster. Results are recomputed on every
// read; there is no cached aggregate state, so two reads without an
// intervening mutation are identical.
type AnalyticsService interface {
	ForAssignment(ctx context.Context, assignmentID string) (*models.Analytics, error)
}

type analyticsService struct {
	store  *store.Store
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(store *store.Store, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		store:  store,
		logger: logger.With().Str("component", "analytics_service").Logger(),
		tracer: otel.Tracer("github.com/classboard/classboard-api/internal/service/analytics"),
	}
}

// ForAssignment returns nil when the assignment does not exist,
// signalling absence rather than an error.
func (s *analyticsService) ForAssignment(ctx context.Context, assignmentID string) (*models.Analytics, error) {
	assignment, ok := s.store.GetAssignment(assignmentID)
	if !ok {
		return nil, nil
	}

	_, span := s.tracer.Start(ctx, "analytics.compute", trace.WithAttributes(
		attribute.String("analytics.assignment_id", assignmentID),
	))
	defer span.End()

	submissions := s.store.SubmissionsByAssignment(assignmentID)

	rosterSize := 0
	if course, ok := s.store.GetCourse(assignment.CourseID); ok {
		rosterSize = course.RosterSize()
	}

	graded := 0
	onTime := 0
	late := 0
	scoreSum := 0.0
	for _, submission := range submissions {
		if submission.IsGraded() {
			graded++
			if submission.Score != nil {
				scoreSum += *submission.Score
			}
		}
		switch {
		case submission.IsOnTime(assignment.DueDate):
			onTime++
		case submission.IsLate(assignment.DueDate):
			late++
		}
	}

	averageScore := 0.0
	if graded > 0 {
		averageScore = scoreSum / float64(graded)
	}

	analytics := &models.Analytics{
		AssignmentID:      assignmentID,
		TotalSubmissions:  len(submissions),
		GradedSubmissions: graded,
		AverageScore:      averageScore,
		OnTimeSubmissions: onTime,
		LateSubmissions:   late,
		NotSubmitted:      rosterSize - len(submissions),
	}

	span.SetAttributes(
		attribute.Int("analytics.total_submissions", analytics.TotalSubmissions),
		attribute.Int("analytics.graded_submissions", analytics.GradedSubmissions),
	)

	return analytics, nil
}
