package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"gorm.io/gorm"
)

type tutorSessionRepository struct {
	db *gorm.DB
}

func NewTutorSessionRepository(db *gorm.DB) *tutorSessionRepository {
	return &tutorSessionRepository{db: db}
}

func (r *tutorSessionRepository) Create(ctx context.Context, session *domain.TutorSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *tutorSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TutorSession, error) {
	var session domain.TutorSession
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("ChatMessages").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *tutorSessionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.TutorSession, error) {
	var sessions []*domain.TutorSession
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *tutorSessionRepository) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]*domain.TutorSession, error) {
	var sessions []*domain.TutorSession
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *tutorSessionRepository) Update(ctx context.Context, session *domain.TutorSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *tutorSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.TutorSession{}, "id = ?", id).Error
}
