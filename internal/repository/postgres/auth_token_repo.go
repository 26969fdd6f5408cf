package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"gorm.io/gorm"
)

type authTokenRepository struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) *authTokenRepository {
	return &authTokenRepository{db: db}
}

func (r *authTokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *authTokenRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AuthToken, error) {
	var token domain.AuthToken
	err := r.db.WithContext(ctx).First(&token, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) Update(ctx context.Context, token *domain.AuthToken) error {
	return r.db.WithContext(ctx).Save(token).Error
}
