package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard-api/internal/dto"
	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/pubsub"
	"github.com/classboard/classboard-api/internal/store"
)

func newSubmissionFixture() (*store.Store, *pubsub.Bus, SubmissionService) {
	s := store.New()
	bus := pubsub.NewBus(testLogger())
	return s, bus, NewSubmissionService(s, bus, testValidator(), testLogger())
}

func TestCreateSubmissionForcesSubmittedStatus(t *testing.T) {
	s, bus, service := newSubmissionFixture()
	events := collectEvents(bus, pubsub.TopicSubmissionCreated)

	created, err := service.Create(context.Background(), dto.SubmissionCreateInput{
		AssignmentID: "a-1",
		StudentID:    "student-1",
		Content:      "my answer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.SubmissionStatusSubmitted, created.Status)
	require.NotNil(t, created.SubmittedAt)
	assert.WithinDuration(t, time.Now().UTC(), *created.SubmittedAt, 2*time.Second)
	assert.Nil(t, created.Score)
	assert.Nil(t, created.GradedAt)

	stored, ok := s.GetSubmission(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, stored)

	require.Len(t, *events, 1)
	event, ok := (*events)[0].(pubsub.SubmissionCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, created.ID, event.Submission.ID)
}

func TestCreateSubmissionRejectsMissingFields(t *testing.T) {
	_, bus, service := newSubmissionFixture()
	events := collectEvents(bus, pubsub.TopicSubmissionCreated)

	_, err := service.Create(context.Background(), dto.SubmissionCreateInput{Content: "orphan"})
	assert.Error(t, err)
	assert.Empty(t, *events)
}

func TestUpdateSubmissionPublishesNoEvent(t *testing.T) {
	s, bus, service := newSubmissionFixture()
	s.PutSubmission(models.Submission{ID: "s-1", Content: "draft", Status: models.SubmissionStatusSubmitted})

	created := collectEvents(bus, pubsub.TopicSubmissionCreated)
	graded := collectEvents(bus, pubsub.TopicSubmissionGraded)

	content := "revised answer"
	updated, err := service.Update(context.Background(), "s-1", dto.SubmissionUpdateInput{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "revised answer", updated.Content)

	assert.Empty(t, *created)
	assert.Empty(t, *graded)
}

func TestUpdateSubmissionMergesOnlySetFields(t *testing.T) {
	s, _, service := newSubmissionFixture()
	s.PutSubmission(models.Submission{
		ID:          "s-1",
		Content:     "original",
		Attachments: []string{"a.pdf"},
		Status:      models.SubmissionStatusSubmitted,
	})

	status := "LATE"
	updated, err := service.Update(context.Background(), "s-1", dto.SubmissionUpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusLate, updated.Status)
	assert.Equal(t, "original", updated.Content)
	assert.Equal(t, []string{"a.pdf"}, updated.Attachments)
}

func TestUpdateSubmissionNotFound(t *testing.T) {
	_, _, service := newSubmissionFixture()

	content := "x"
	_, err := service.Update(context.Background(), "missing", dto.SubmissionUpdateInput{Content: &content})
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGradeSubmissionForcesGradedStatus(t *testing.T) {
	s, bus, service := newSubmissionFixture()
	s.PutSubmission(models.Submission{ID: "s-1", Status: models.SubmissionStatusSubmitted})
	events := collectEvents(bus, pubsub.TopicSubmissionGraded)

	feedback := "Solid work"
	gradedSub, err := service.Grade(context.Background(), "s-1", dto.GradeInput{Score: 92.5, Feedback: &feedback})
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusGraded, gradedSub.Status)
	require.NotNil(t, gradedSub.Score)
	assert.Equal(t, 92.5, *gradedSub.Score)
	require.NotNil(t, gradedSub.Feedback)
	assert.Equal(t, "Solid work", *gradedSub.Feedback)
	require.NotNil(t, gradedSub.GradedAt)

	require.Len(t, *events, 1)
	event, ok := (*events)[0].(pubsub.SubmissionGradedEvent)
	require.True(t, ok)
	assert.Equal(t, "s-1", event.Submission.ID)
}

func TestGradeSubmissionWithoutFeedbackKeepsExisting(t *testing.T) {
	s, _, service := newSubmissionFixture()
	existing := "earlier note"
	s.PutSubmission(models.Submission{ID: "s-1", Status: models.SubmissionStatusSubmitted, Feedback: &existing})

	gradedSub, err := service.Grade(context.Background(), "s-1", dto.GradeInput{Score: 40})
	require.NoError(t, err)

	require.NotNil(t, gradedSub.Feedback)
	assert.Equal(t, "earlier note", *gradedSub.Feedback)
}

func TestGradeSubmissionAcceptsOutOfRangeScores(t *testing.T) {
	s, _, service := newSubmissionFixture()
	s.PutSubmission(models.Submission{ID: "s-1", Status: models.SubmissionStatusSubmitted})

	gradedSub, err := service.Grade(context.Background(), "s-1", dto.GradeInput{Score: 250})
	require.NoError(t, err)
	require.NotNil(t, gradedSub.Score)
	assert.Equal(t, 250.0, *gradedSub.Score)
}

func TestGradeSubmissionNotFound(t *testing.T) {
	_, bus, service := newSubmissionFixture()
	events := collectEvents(bus, pubsub.TopicSubmissionGraded)

	_, err := service.Grade(context.Background(), "missing", dto.GradeInput{Score: 10})
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
	assert.Empty(t, *events)
}

func TestListSubmissionsCombinesFiltersWithAnd(t *testing.T) {
	s, _, service := newSubmissionFixture()
	s.PutSubmission(models.Submission{ID: "s-1", AssignmentID: "a-1", StudentID: "st-1", Status: models.SubmissionStatusGraded})
	s.PutSubmission(models.Submission{ID: "s-2", AssignmentID: "a-1", StudentID: "st-2", Status: models.SubmissionStatusSubmitted})
	s.PutSubmission(models.Submission{ID: "s-3", AssignmentID: "a-2", StudentID: "st-1", Status: models.SubmissionStatusGraded})

	ctx := context.Background()

	all, err := service.List(ctx, SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byAssignment, err := service.List(ctx, SubmissionFilter{AssignmentID: "a-1"})
	require.NoError(t, err)
	assert.Len(t, byAssignment, 2)

	narrow, err := service.List(ctx, SubmissionFilter{AssignmentID: "a-1", StudentID: "st-1", Status: "GRADED"})
	require.NoError(t, err)
	require.Len(t, narrow, 1)
	assert.Equal(t, "s-1", narrow[0].ID)
}
