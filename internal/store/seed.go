package store

import (
	"fmt"
	"time"

	"github.com/classboard/classboard-api/internal/models"
)

// Seed loads the demo dataset: two teachers, twenty students split over
// two courses, three assignments and a spread of graded and ungraded
// submissions. Seeding is an explicit step so tests can start from an
// empty store.
func (s *Store) Seed() {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	teachers := []models.User{
		{ID: "1", Email: "john.doe@school.edu", Name: "John Doe", Role: models.RoleTeacher, CreatedAt: base, UpdatedAt: base},
		{ID: "2", Email: "jane.smith@school.edu", Name: "Jane Smith", Role: models.RoleTeacher, CreatedAt: base, UpdatedAt: base},
	}
	for _, teacher := range teachers {
		s.PutUser(teacher)
	}

	studentIDs := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		student := models.User{
			ID:        fmt.Sprintf("student-%d", i),
			Email:     fmt.Sprintf("student%d@school.edu", i),
			Name:      fmt.Sprintf("Student %d", i),
			Role:      models.RoleStudent,
			CreatedAt: base,
			UpdatedAt: base,
		}
		s.PutUser(student)
		studentIDs = append(studentIDs, student.ID)
	}

	course1 := models.Course{
		ID:          "course-1",
		Name:        "Introduction to Computer Science",
		Code:        "CS101",
		Description: "Learn the fundamentals of programming and computer science",
		TeacherID:   "1",
		StudentIDs:  studentIDs[:10],
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	course2 := models.Course{
		ID:          "course-2",
		Name:        "Web Development",
		Code:        "CS201",
		Description: "Build modern web applications with React and Node.js",
		TeacherID:   "1",
		StudentIDs:  studentIDs[10:],
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	s.PutCourse(course1)
	s.PutCourse(course2)

	assignments := []models.Assignment{
		{
			ID:          "assignment-1",
			Title:       "Variables and Data Types",
			Description: "Complete exercises on variables, data types, and basic operations",
			DueDate:     time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC),
			MaxScore:    100,
			Status:      models.AssignmentStatusPublished,
			TeacherID:   "1",
			CourseID:    course1.ID,
			Attachments: []string{},
			CreatedAt:   time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "assignment-2",
			Title:       "Build a Todo App",
			Description: "Create a full-stack todo application with CRUD operations",
			DueDate:     time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC),
			MaxScore:    150,
			Status:      models.AssignmentStatusPublished,
			TeacherID:   "1",
			CourseID:    course2.ID,
			Attachments: []string{},
			CreatedAt:   time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "assignment-3",
			Title:       "Loops and Functions",
			Description: "Practice writing loops and functions to solve problems",
			DueDate:     time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC),
			MaxScore:    100,
			Status:      models.AssignmentStatusDraft,
			TeacherID:   "1",
			CourseID:    course1.ID,
			Attachments: []string{},
			CreatedAt:   time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, assignment := range assignments {
		s.PutAssignment(assignment)
	}

	s.seedSubmissions(assignments[0], course1.StudentIDs[:7], 4, 70, 10, "Good work! Keep it up.",
		time.Date(2024, time.December, 18, 0, 0, 0, 0, time.UTC))
	s.seedSubmissions(assignments[1], course2.StudentIDs[:5], 2, 120, 15, "Excellent implementation!",
		time.Date(2024, time.December, 23, 0, 0, 0, 0, time.UTC))
}

func (s *Store) seedSubmissions(assignment models.Assignment, studentIDs []string, graded int, baseScore, step float64, feedback string, submittedAt time.Time) {
	gradedAt := submittedAt.AddDate(0, 0, 1)

	for i, studentID := range studentIDs {
		submission := models.Submission{
			ID:           fmt.Sprintf("submission-%s-%s", assignment.ID, studentID),
			AssignmentID: assignment.ID,
			StudentID:    studentID,
			Content:      fmt.Sprintf("This is my submission for %s", assignment.Title),
			Attachments:  []string{},
			Status:       models.SubmissionStatusSubmitted,
			SubmittedAt:  &submittedAt,
			CreatedAt:    submittedAt,
			UpdatedAt:    gradedAt,
		}
		if i < graded {
			score := baseScore + float64(i)*step
			text := feedback
			at := gradedAt
			submission.Status = models.SubmissionStatusGraded
			submission.Score = &score
			submission.Feedback = &text
			submission.GradedAt = &at
		}
		s.PutSubmission(submission)
	}
}
