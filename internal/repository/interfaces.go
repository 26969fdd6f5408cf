package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuthTokenRepository interface {
	Create(ctx context.Context, token *domain.AuthToken) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AuthToken, error)
	Update(ctx context.Context, token *domain.AuthToken) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.File, error)
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*domain.File, error)
	Update(ctx context.Context, file *domain.File) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TutorSessionRepository interface {
	Create(ctx context.Context, session *domain.TutorSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TutorSession, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.TutorSession, error)
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*domain.TutorSession, error)
	Update(ctx context.Context, session *domain.TutorSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatMessage, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.ChatMessage, error)
	GetByTutorSessionID(ctx context.Context, sessionID uuid.UUID) ([]*domain.ChatMessage, error)
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*domain.ChatMessage, error)
	Update(ctx context.Context, message *domain.ChatMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User         UserRepository
	AuthToken    AuthTokenRepository
	Course       CourseRepository
	File         FileRepository
	TutorSession TutorSessionRepository
	ChatMessage  ChatMessageRepository
}
