package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthToken is a user's stored Google OAuth credential pair. AccessToken and
// RefreshToken are encrypted before they hit the database; Expiry is kept in
// UTC. At most one row exists per user.
type AuthToken struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID      `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	AccessToken  string         `json:"-" gorm:"not null"`
	RefreshToken string         `json:"-" gorm:"not null"`
	Expiry       time.Time      `json:"expiry" gorm:"not null"`
	Email        string         `json:"email"`
	Scopes       datatypes.JSON `json:"scopes"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
