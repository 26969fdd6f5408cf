package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) Valid() bool {
	return r == ChatRoleUser || r == ChatRoleAssistant
}

// TutorSession is one conversation thread between a user and the AI tutor,
// scoped to a single course.
type TutorSession struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     *string    `json:"title"`
	CourseID  uuid.UUID  `json:"courseId" gorm:"type:uuid;not null"`
	UserID    uuid.UUID  `json:"userId" gorm:"type:uuid;not null"`
	CreatedAt time.Time  `json:"createdAt"`
	EndedAt   *time.Time `json:"endedAt"`

	Course       Course        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User         User          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ChatMessages []ChatMessage `json:"chatMessages" gorm:"constraint:OnDelete:CASCADE"`
}

// ChatMessage stores Message encrypted; the service layer decrypts on read
// and falls back to the stored value for rows written before encryption.
type ChatMessage struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Role           ChatRole  `json:"role" gorm:"not null"`
	Message        string    `json:"message" gorm:"type:text;not null"`
	TutorSessionID uuid.UUID `json:"tutorSessionId" gorm:"type:uuid;not null"`
	CourseID       uuid.UUID `json:"courseId" gorm:"type:uuid;not null"`
	UserID         uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	CreatedAt      time.Time `json:"createdAt"`

	TutorSession TutorSession `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Course       Course       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User         User         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
