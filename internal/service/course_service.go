package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/repository"
	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo repository.CourseRepository
	validate   *validator.Validate
}

func NewCourseService(courseRepo repository.CourseRepository) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		validate:   newValidator(),
	}
}

type CourseInput struct {
	Name string `validate:"required,min=1,max=100"`
}

func (s *CourseService) Create(ctx context.Context, userID uuid.UUID, input CourseInput) (*domain.Course, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:        uuid.New(),
		Name:      input.Name,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateCourseName
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Course, error) {
	return s.courseRepo.GetByUserID(ctx, userID)
}

// Get looks the course up by primary key only, then compares the owner. A
// missing row and a foreign row produce the same error.
func (s *CourseService) Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	if course.UserID != userID {
		return nil, domain.ErrCourseNotFound
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, userID, courseID uuid.UUID, input CourseInput) (*domain.Course, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	course, err := s.Get(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	course.Name = input.Name
	course.UpdatedAt = time.Now()
	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateCourseName
		}
		return nil, err
	}
	return course, nil
}

// Delete removes the course; files, tutor sessions and their chat messages
// go with it through the DB-level cascades.
func (s *CourseService) Delete(ctx context.Context, userID, courseID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, courseID); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, courseID)
}
