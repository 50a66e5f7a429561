package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/dto"
	"github.com/classboard/classboard-api/internal/models"
	"github.com/classboard/classboard-api/internal/store"
)

// CourseService manages courses and their rosters. Course mutations do
// not publish events; nothing subscribes to roster changes.
type CourseService interface {
	Get(ctx context.Context, id string) (models.Course, error)
	List(ctx context.Context, teacherID string) ([]models.Course, error)
	Create(ctx context.Context, input dto.CourseCreateInput) (models.Course, error)
	Update(ctx context.Context, id string, input dto.CourseUpdateInput) (models.Course, error)
}

type courseService struct {
	store     *store.Store
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCourseService constructs the course service.
func NewCourseService(store *store.Store, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		store:     store,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
		now:       time.Now,
	}
}

func (s *courseService) Get(_ context.Context, id string) (models.Course, error) {
	course, ok := s.store.GetCourse(id)
	if !ok {
		return models.Course{}, ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) List(_ context.Context, teacherID string) ([]models.Course, error) {
	if teacherID == "" {
		return s.store.ListCourses(), nil
	}
	return s.store.CoursesByTeacher(teacherID), nil
}

func (s *courseService) Create(_ context.Context, input dto.CourseCreateInput) (models.Course, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.Course{}, err
	}

	now := s.now().UTC()
	course := models.Course{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		TeacherID:   input.TeacherID,
		StudentIDs:  append([]string{}, input.StudentIDs...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.PutCourse(course)

	s.logger.Info().Str("course_id", course.ID).Str("teacher_id", course.TeacherID).Msg("course created")
	return course, nil
}

func (s *courseService) Update(_ context.Context, id string, input dto.CourseUpdateInput) (models.Course, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.Course{}, err
	}

	course, ok := s.store.GetCourse(id)
	if !ok {
		return models.Course{}, ErrCourseNotFound
	}

	if input.Name != nil {
		course.Name = *input.Name
	}
	if input.Code != nil {
		course.Code = *input.Code
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.TeacherID != nil {
		course.TeacherID = *input.TeacherID
	}
	if input.StudentIDs != nil {
		course.StudentIDs = append([]string{}, (*input.StudentIDs)...)
	}
	course.UpdatedAt = s.now().UTC()
	s.store.PutCourse(course)

	return course, nil
}
