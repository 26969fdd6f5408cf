package postgres

import (
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.AuthToken{},
		&domain.Course{},
		&domain.File{},
		&domain.TutorSession{},
		&domain.ChatMessage{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		AuthToken:    NewAuthTokenRepository(db),
		Course:       NewCourseRepository(db),
		File:         NewFileRepository(db),
		TutorSession: NewTutorSessionRepository(db),
		ChatMessage:  NewChatMessageRepository(db),
	}
}
