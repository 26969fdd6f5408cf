package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "Testpass1!",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates a user via the API and logs in, returning
// the user and a bearer token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})

	resp, err := http.Post(ts.APIURL("/user/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var userResp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	body, _ = json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})
	loginResp, err := http.Post(ts.APIURL("/user/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer loginResp.Body.Close()

	var tokenResp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	userID, _ := uuid.Parse(userResp.ID)
	return &domain.User{ID: userID, Email: userResp.Email}, tokenResp.AccessToken
}

// CourseBuilder creates test courses with a builder pattern
type CourseBuilder struct {
	name  string
	owner *domain.User
}

func NewCourseBuilder(owner *domain.User) *CourseBuilder {
	return &CourseBuilder{
		name:  fmt.Sprintf("Course %s", uuid.New().String()[:8]),
		owner: owner,
	}
}

func (b *CourseBuilder) WithName(name string) *CourseBuilder {
	b.name = name
	return b
}

func (b *CourseBuilder) Build(t *testing.T, db *gorm.DB) *domain.Course {
	t.Helper()

	course := &domain.Course{
		ID:     uuid.New(),
		Name:   b.name,
		UserID: b.owner.ID,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

// FileBuilder creates test drive file records
type FileBuilder struct {
	name        string
	driveFileID string
	course      *domain.Course
}

func NewFileBuilder(course *domain.Course) *FileBuilder {
	return &FileBuilder{
		name:        fmt.Sprintf("notes_%s.pdf", uuid.New().String()[:8]),
		driveFileID: uuid.New().String(),
		course:      course,
	}
}

func (b *FileBuilder) WithName(name string) *FileBuilder {
	b.name = name
	return b
}

func (b *FileBuilder) WithDriveFileID(id string) *FileBuilder {
	b.driveFileID = id
	return b
}

func (b *FileBuilder) Build(t *testing.T, db *gorm.DB) *domain.File {
	t.Helper()

	file := &domain.File{
		ID:          uuid.New(),
		Name:        b.name,
		DriveFileID: b.driveFileID,
		CourseID:    b.course.ID,
		UserID:      b.course.UserID,
	}
	if err := db.Create(file).Error; err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	return file
}

// SessionBuilder creates test tutor sessions
type SessionBuilder struct {
	title  *string
	course *domain.Course
	owner  *domain.User
}

func NewSessionBuilder(owner *domain.User, course *domain.Course) *SessionBuilder {
	return &SessionBuilder{course: course, owner: owner}
}

func (b *SessionBuilder) WithTitle(title string) *SessionBuilder {
	b.title = &title
	return b
}

func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.TutorSession {
	t.Helper()

	session := &domain.TutorSession{
		ID:       uuid.New(),
		Title:    b.title,
		CourseID: b.course.ID,
		UserID:   b.owner.ID,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create tutor session: %v", err)
	}
	return session
}
