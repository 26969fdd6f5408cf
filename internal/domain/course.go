package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_course_name_per_user"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_course_name_per_user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// File is a reference to a document in the user's cloud drive. DriveFileID is
// the provider-side identifier used by the drive gateway.
type File struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex:idx_file_name_per_course"`
	DriveFileID string    `json:"driveFileId"`
	CourseID    uuid.UUID `json:"courseId" gorm:"type:uuid;not null;uniqueIndex:idx_file_name_per_course"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"createdAt"`

	Course Course `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User   User   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
