package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard-api/internal/models"
)

func TestPutAndGetAssignment(t *testing.T) {
	s := New()

	assignment := models.Assignment{
		ID:       "a-1",
		Title:    "Recursion worksheet",
		CourseID: "c-1",
		Status:   models.AssignmentStatusDraft,
		DueDate:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	s.PutAssignment(assignment)

	got, ok := s.GetAssignment("a-1")
	require.True(t, ok)
	assert.Equal(t, assignment, got)

	_, ok = s.GetAssignment("missing")
	assert.False(t, ok)
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	s := New()

	s.PutCourse(models.Course{ID: "c-1", Name: "Algebra"})
	s.PutCourse(models.Course{ID: "c-1", Name: "Algebra II"})

	course, ok := s.GetCourse("c-1")
	require.True(t, ok)
	assert.Equal(t, "Algebra II", course.Name)
	assert.Len(t, s.ListCourses(), 1)
}

func TestDeleteAssignmentReportsExistence(t *testing.T) {
	s := New()
	s.PutAssignment(models.Assignment{ID: "a-1"})

	assert.True(t, s.DeleteAssignment("a-1"))
	assert.False(t, s.DeleteAssignment("a-1"))

	_, ok := s.GetAssignment("a-1")
	assert.False(t, ok)
}

func TestSubmissionsByAssignment(t *testing.T) {
	s := New()
	s.PutSubmission(models.Submission{ID: "s-1", AssignmentID: "a-1"})
	s.PutSubmission(models.Submission{ID: "s-2", AssignmentID: "a-1"})
	s.PutSubmission(models.Submission{ID: "s-3", AssignmentID: "a-2"})

	matches := s.SubmissionsByAssignment("a-1")
	assert.Len(t, matches, 2)
	for _, submission := range matches {
		assert.Equal(t, "a-1", submission.AssignmentID)
	}

	assert.Empty(t, s.SubmissionsByAssignment("missing"))
}

func TestCoursesByTeacher(t *testing.T) {
	s := New()
	s.PutCourse(models.Course{ID: "c-1", TeacherID: "t-1"})
	s.PutCourse(models.Course{ID: "c-2", TeacherID: "t-2"})

	courses := s.CoursesByTeacher("t-1")
	require.Len(t, courses, 1)
	assert.Equal(t, "c-1", courses[0].ID)
}

func TestMutationsVisibleToSubsequentReads(t *testing.T) {
	s := New()

	s.PutUser(models.User{ID: "u-1", Role: models.RoleStudent})
	user, ok := s.GetUser("u-1")
	require.True(t, ok)
	assert.Equal(t, models.RoleStudent, user.Role)

	user.Name = "Renamed"
	s.PutUser(user)

	got, ok := s.GetUser("u-1")
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)
}

func TestSeedLoadsDemoDataset(t *testing.T) {
	s := New()
	s.Seed()

	assert.Len(t, s.ListUsers(), 22)
	assert.Len(t, s.ListCourses(), 2)
	assert.Len(t, s.ListAssignments(), 3)
	assert.Len(t, s.ListSubmissions(), 12)

	course, ok := s.GetCourse("course-1")
	require.True(t, ok)
	assert.Equal(t, "CS101", course.Code)
	assert.Equal(t, 10, course.RosterSize())

	assignment, ok := s.GetAssignment("assignment-3")
	require.True(t, ok)
	assert.Equal(t, models.AssignmentStatusDraft, assignment.Status)

	graded := 0
	for _, submission := range s.SubmissionsByAssignment("assignment-1") {
		if submission.IsGraded() {
			graded++
			require.NotNil(t, submission.Score)
			require.NotNil(t, submission.GradedAt)
		}
	}
	assert.Equal(t, 4, graded)
}

func TestSeedIsExplicit(t *testing.T) {
	s := New()
	assert.Empty(t, s.ListUsers())
	assert.Empty(t, s.ListSubmissions())
}
