package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/store"
)

var analyticsDueDate = time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)

func analyticsFixture(rosterSize int) *store.Store {
	s := store.New()

	studentIDs := make([]string, 0, rosterSize)
	for i := 1; i <= rosterSize; i++ {
		studentIDs = append(studentIDs, fmt.Sprintf("student-%d", i))
	}
	s.PutCourse(models.Course{ID: "course-1", TeacherID: "1", StudentIDs: studentIDs})
	s.PutAssignment(models.Assignment{
		ID:       "assignment-1",
		CourseID: "course-1",
		DueDate:  analyticsDueDate,
		Status:   models.AssignmentStatusPublished,
	})
	return s
}

func gradedSubmission(id, studentID string, score float64, submittedAt time.Time) models.Submission {
	gradedAt := submittedAt.AddDate(0, 0, 1)
	return models.Submission{
		ID:           id,
		AssignmentID: "assignment-1",
		StudentID:    studentID,
		Status:       models.SubmissionStatusGraded,
		Score:        &score,
		SubmittedAt:  &submittedAt,
		GradedAt:     &gradedAt,
	}
}

func ungradedSubmission(id, studentID string, submittedAt time.Time) models.Submission {
	return models.Submission{
		ID:           id,
		AssignmentID: "assignment-1",
		StudentID:    studentID,
		Status:       models.SubmissionStatusSubmitted,
		SubmittedAt:  &submittedAt,
	}
}

func TestForAssignmentReturnsNilWhenAssignmentMissing(t *testing.T) {
	service := NewAnalyticsService(store.New(), testLogger())

	analytics, err := service.ForAssignment(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, analytics)
}

func TestForAssignmentAveragesGradedSubmissionsOnly(t *testing.T) {
	s := analyticsFixture(10)
	early := analyticsDueDate.AddDate(0, 0, -2)
	for i, score := range []float64{70, 80, 90, 100} {
		s.PutSubmission(gradedSubmission(fmt.Sprintf("graded-%d", i), fmt.Sprintf("student-%d", i+1), score, early))
	}
	s.PutSubmission(ungradedSubmission("pending-1", "student-5", early))
	s.PutSubmission(ungradedSubmission("pending-2", "student-6", early))

	service := NewAnalyticsService(s, testLogger())
	analytics, err := service.ForAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.NotNil(t, analytics)

	assert.Equal(t, 6, analytics.TotalSubmissions)
	assert.Equal(t, 4, analytics.GradedSubmissions)
	assert.InDelta(t, 85.0, analytics.AverageScore, 1e-9)
}

func TestForAssignmentAverageIsZeroWithNoGrades(t *testing.T) {
	s := analyticsFixture(10)
	s.PutSubmission(ungradedSubmission("pending-1", "student-1", analyticsDueDate.AddDate(0, 0, -1)))

	service := NewAnalyticsService(s, testLogger())
	analytics, err := service.ForAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.NotNil(t, analytics)

	assert.Zero(t, analytics.GradedSubmissions)
	assert.Zero(t, analytics.AverageScore)
}

func TestForAssignmentDueDateBoundaryIsInclusive(t *testing.T) {
	s := analyticsFixture(10)
	s.PutSubmission(ungradedSubmission("exact", "student-1", analyticsDueDate))
	s.PutSubmission(ungradedSubmission("early", "student-2", analyticsDueDate.Add(-time.Hour)))
	s.PutSubmission(ungradedSubmission("late", "student-3", analyticsDueDate.Add(time.Second)))

	service := NewAnalyticsService(s, testLogger())
	analytics, err := service.ForAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.NotNil(t, analytics)

	assert.Equal(t, 2, analytics.OnTimeSubmissions)
	assert.Equal(t, 1, analytics.LateSubmissions)
}

func TestForAssignmentNotSubmittedUsesRosterSize(t *testing.T) {
	s := analyticsFixture(10)
	early := analyticsDueDate.AddDate(0, 0, -1)
	for i := 1; i <= 7; i++ {
		s.PutSubmission(ungradedSubmission(fmt.Sprintf("sub-%d", i), fmt.Sprintf("student-%d", i), early))
	}

	service := NewAnalyticsService(s, testLogger())
	analytics, err := service.ForAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.NotNil(t, analytics)

	assert.Equal(t, 3, analytics.NotSubmitted)
}

func TestForAssignmentNotSubmittedCanGoNegative(t *testing.T) {
	s := analyticsFixture(2)
	early := analyticsDueDate.AddDate(0, 0, -1)
	for i := 1; i <= 4; i++ {
		s.PutSubmission(ungradedSubmission(fmt.Sprintf("sub-%d", i), fmt.Sprintf("outsider-%d", i), early))
	}

	service := NewAnalyticsService(s, testLogger())
	analytics, err := service.ForAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.NotNil(t, analytics)

	// Submitters outside the roster push the count negative; the raw
	// value is reported rather than clamped.
	assert.Equal(t, -2, analytics.NotSubmitted)
}

func TestForAssignmentIsPureRecomputation(t *testing.T) {
	s := analyticsFixture(10)
	s.PutSubmission(gradedSubmission("g-1", "student-1", 90, analyticsDueDate.AddDate(0, 0, -1)))

	service := NewAnalyticsService(s, testLogger())
	ctx := context.Background()

	first, err := service.ForAssignment(ctx, "assignment-1")
	require.NoError(t, err)
	second, err := service.ForAssignment(ctx, "assignment-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	s.PutSubmission(ungradedSubmission("g-2", "student-2", analyticsDueDate))
	third, err := service.ForAssignment(ctx, "assignment-1")
	require.NoError(t, err)
	assert.Equal(t, 2, third.TotalSubmissions)
	assert.Equal(t, first.GradedSubmissions, third.GradedSubmissions)
}

func TestForAssignmentMissingCourseMeansEmptyRoster(t *testing.T) {
	s := store.New()
	s.PutAssignment(models.Assignment{ID: "assignment-1", CourseID: "ghost", DueDate: analyticsDueDate})
	s.PutSubmission(ungradedSubmission("sub-1", "student-1", analyticsDueDate))

	service := NewAnalyticsService(s, testLogger())
	analytics, err := service.ForAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.NotNil(t, analytics)

	assert.Equal(t, -1, analytics.NotSubmitted)
}
