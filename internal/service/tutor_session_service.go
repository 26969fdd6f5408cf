package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/repository"
	"gorm.io/gorm"
)

type TutorSessionService struct {
	sessionRepo repository.TutorSessionRepository
	courseRepo  repository.CourseRepository
}

func NewTutorSessionService(sessionRepo repository.TutorSessionRepository, courseRepo repository.CourseRepository) *TutorSessionService {
	return &TutorSessionService{
		sessionRepo: sessionRepo,
		courseRepo:  courseRepo,
	}
}

type TutorSessionInput struct {
	CourseID uuid.UUID
	Title    *string
}

func (s *TutorSessionService) Create(ctx context.Context, userID uuid.UUID, input TutorSessionInput) (*domain.TutorSession, error) {
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

	session := &domain.TutorSession{
		ID:        uuid.New(),
		Title:     input.Title,
		CourseID:  input.CourseID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	session.Course = *course
	return session, nil
}

func (s *TutorSessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.TutorSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTutorSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrTutorSessionNotFound
	}
	return session, nil
}

func (s *TutorSessionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.TutorSession, error) {
	return s.sessionRepo.GetByUserID(ctx, userID)
}

func (s *TutorSessionService) ListForCourse(ctx context.Context, userID, courseID uuid.UUID) ([]*domain.TutorSession, error) {
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
	return s.sessionRepo.GetByCourseID(ctx, courseID)
}

func (s *TutorSessionService) UpdateTitle(ctx context.Context, userID, sessionID uuid.UUID, title string) (*domain.TutorSession, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Title = &title
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// End stamps the session as finished. Ending twice keeps the first timestamp.
func (s *TutorSessionService) End(ctx context.Context, userID, sessionID uuid.UUID) (*domain.TutorSession, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.EndedAt == nil {
		now := time.Now()
		session.EndedAt = &now
		if err := s.sessionRepo.Update(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (s *TutorSessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}
