// Package store holds the in-memory authoritative collections for all
// domain entities. It performs no validation; callers own the shape of
// what they put in.
package store

import (
	"sync"

	"github.com/classboard/classboard-api/internal/models"
)

// Store is an explicitly constructed in-memory data store. Mutations
// are immediately visible to all subsequent reads. The mutex exists
// because subscription delivery and the HTTP server run on separate
// goroutines.
type Store struct {
	mu          sync.RWMutex
	users       map[string]models.User
	courses     map[string]models.Course
	assignments map[string]models.Assignment
	submissions map[string]models.Submission
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:       make(map[string]models.User),
		courses:     make(map[string]models.Course),
		assignments: make(map[string]models.Assignment),
		submissions: make(map[string]models.Submission),
	}
}

// GetUser looks up a user by id.
func (s *Store) GetUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	return user, ok
}

// ListUsers returns all users.
func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users
}

// PutUser stores a user under its id.
func (s *Store) PutUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
}

// GetCourse looks up a course by id.
func (s *Store) GetCourse(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	return course, ok
}

// ListCourses returns all courses.
func (s *Store) ListCourses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		courses = append(courses, course)
	}
	return courses
}

// CoursesByTeacher returns the courses owned by the given teacher.
func (s *Store) CoursesByTeacher(teacherID string) []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]models.Course, 0)
	for _, course := range s.courses {
		if course.TeacherID == teacherID {
			courses = append(courses, course)
		}
	}
	return courses
}

// PutCourse stores a course under its id.
func (s *Store) PutCourse(course models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses[course.ID] = course
}

// GetAssignment looks up an assignment by id.
func (s *Store) GetAssignment(id string) (models.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignment, ok := s.assignments[id]
	return assignment, ok
}

// ListAssignments returns all assignments.
func (s *Store) ListAssignments() []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignments := make([]models.Assignment, 0, len(s.assignments))
	for _, assignment := range s.assignments {
		assignments = append(assignments, assignment)
	}
	return assignments
}

// AssignmentsByCourse returns the assignments belonging to a course.
func (s *Store) AssignmentsByCourse(courseID string) []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignments := make([]models.Assignment, 0)
	for _, assignment := range s.assignments {
		if assignment.CourseID == courseID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments
}

// PutAssignment stores an assignment under its id.
func (s *Store) PutAssignment(assignment models.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignments[assignment.ID] = assignment
}

// DeleteAssignment removes an assignment and reports whether it existed.
func (s *Store) DeleteAssignment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.assignments[id]
	delete(s.assignments, id)
	return existed
}

// GetSubmission looks up a submission by id.
func (s *Store) GetSubmission(id string) (models.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submission, ok := s.submissions[id]
	return submission, ok
}

// ListSubmissions returns all submissions.
func (s *Store) ListSubmissions() []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submissions := make([]models.Submission, 0, len(s.submissions))
	for _, submission := range s.submissions {
		submissions = append(submissions, submission)
	}
	return submissions
}

// SubmissionsByAssignment returns every submission for an assignment.
func (s *Store) SubmissionsByAssignment(assignmentID string) []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submissions := make([]models.Submission, 0)
	for _, submission := range s.submissions {
		if submission.AssignmentID == assignmentID {
			submissions = append(submissions, submission)
		}
	}
	return submissions
}

// PutSubmission stores a submission under its id.
func (s *Store) PutSubmission(submission models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions[submission.ID] = submission
}

// DeleteSubmission removes a submission and reports whether it existed.
func (s *Store) DeleteSubmission(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.submissions[id]
	delete(s.submissions, id)
	return existed
}
