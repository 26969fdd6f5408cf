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

type FileService struct {
	fileRepo   repository.FileRepository
	courseRepo repository.CourseRepository
	validate   *validator.Validate
}

func NewFileService(fileRepo repository.FileRepository, courseRepo repository.CourseRepository) *FileService {
	return &FileService{
		fileRepo:   fileRepo,
		courseRepo: courseRepo,
		validate:   newValidator(),
	}
}

type FileInput struct {
	Name        string    `validate:"required,min=1,max=255"`
	CourseID    uuid.UUID `validate:"required"`
	DriveFileID string    `validate:"max=255"`
}

func (s *FileService) Create(ctx context.Context, userID uuid.UUID, input FileInput) (*domain.File, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	// The target course must belong to the requester before a file can be
	// attached to it.
	course, err := s.courseRepo.GetByID(ctx, input.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	if course.UserID != userID {
		return nil, domain.ErrCourseNotFound
	}

	file := &domain.File{
		ID:          uuid.New(),
		Name:        input.Name,
		DriveFileID: input.DriveFileID,
		CourseID:    input.CourseID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateFileName
		}
		return nil, err
	}

	file.Course = *course
	return file, nil
}

func (s *FileService) List(ctx context.Context, userID uuid.UUID) ([]*domain.File, error) {
	return s.fileRepo.GetByUserID(ctx, userID)
}

func (s *FileService) Get(ctx context.Context, userID, fileID uuid.UUID) (*domain.File, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}
	if file.UserID != userID {
		return nil, domain.ErrFileNotFound
	}
	return file, nil
}

func (s *FileService) Rename(ctx context.Context, userID, fileID uuid.UUID, newName string) (*domain.File, error) {
	if err := validateStruct(s.validate, struct {
		Name string `validate:"required,min=1,max=255"`
	}{Name: newName}); err != nil {
		return nil, err
	}

	file, err := s.Get(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	file.Name = newName
	if err := s.fileRepo.Update(ctx, file); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateFileName
		}
		return nil, err
	}
	return file, nil
}

func (s *FileService) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, fileID); err != nil {
		return err
	}
	return s.fileRepo.Delete(ctx, fileID)
}
