package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/cryptoutil"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidChatRole = errors.New("invalid chat role")

// TutorLLM produces assistant replies from course material and history.
type TutorLLM interface {
	TutorReply(ctx context.Context, courseMaterial string, history []gateway.ChatTurn) string
}

// DriveReader fetches a drive file's extracted text content.
type DriveReader interface {
	ReadFile(ctx context.Context, userID uuid.UUID, fileID string) (*gateway.DriveFileContent, error)
}

type ChatMessageService struct {
	messageRepo repository.ChatMessageRepository
	sessionRepo repository.TutorSessionRepository
	fileRepo    repository.FileRepository
	cipher      *cryptoutil.Cipher
	llm         TutorLLM
	drive       DriveReader
}

func NewChatMessageService(
	messageRepo repository.ChatMessageRepository,
	sessionRepo repository.TutorSessionRepository,
	fileRepo repository.FileRepository,
	cipher *cryptoutil.Cipher,
	llm TutorLLM,
	drive DriveReader,
) *ChatMessageService {
	return &ChatMessageService{
		messageRepo: messageRepo,
		sessionRepo: sessionRepo,
		fileRepo:    fileRepo,
		cipher:      cipher,
		llm:         llm,
		drive:       drive,
	}
}

// ChatMessageView is a message with its text in the clear plus the session
// and course context the API returns alongside it.
type ChatMessageView struct {
	ID                uuid.UUID       `json:"id"`
	Role              domain.ChatRole `json:"role"`
	Message           string          `json:"message"`
	TutorSessionID    uuid.UUID       `json:"tutorSessionId"`
	TutorSessionTitle *string         `json:"tutorSessionTitle"`
	CourseName        string          `json:"courseName"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type ChatMessageInput struct {
	TutorSessionID uuid.UUID
	Message        string
}

// Create stores the user's message, asks the tutor model for a reply over the
// course materials and session history, stores that reply and returns it.
// Model and drive failures never fail the request; they degrade to the
// fallback text inside the assistant message.
func (s *ChatMessageService) Create(ctx context.Context, userID uuid.UUID, input ChatMessageInput) (*ChatMessageView, error) {
	session, err := s.ownedSession(ctx, userID, input.TutorSessionID)
	if err != nil {
		return nil, err
	}

	history, err := s.sessionHistory(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store(ctx, userID, session, domain.ChatRoleUser, input.Message); err != nil {
		return nil, err
	}
	history = append(history, gateway.ChatTurn{Role: string(domain.ChatRoleUser), Content: input.Message})

	material := s.courseMaterial(ctx, userID, session.CourseID)
	reply := s.llm.TutorReply(ctx, material, history)

	assistant, err := s.store(ctx, userID, session, domain.ChatRoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	return &ChatMessageView{
		ID:                assistant.ID,
		Role:              assistant.Role,
		Message:           reply,
		TutorSessionID:    session.ID,
		TutorSessionTitle: session.Title,
		CourseName:        session.Course.Name,
		CreatedAt:         assistant.CreatedAt,
	}, nil
}

func (s *ChatMessageService) Get(ctx context.Context, userID, messageID uuid.UUID) (*ChatMessageView, error) {
	message, err := s.ownedMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	return &ChatMessageView{
		ID:                message.ID,
		Role:              message.Role,
		Message:           s.decryptText(message.Message),
		TutorSessionID:    message.TutorSessionID,
		TutorSessionTitle: message.TutorSession.Title,
		CourseName:        message.Course.Name,
		CreatedAt:         message.CreatedAt,
	}, nil
}

func (s *ChatMessageService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatMessage, error) {
	messages, err := s.messageRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.decryptAll(messages)
	return messages, nil
}

func (s *ChatMessageService) ListForSession(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.ChatMessage, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.GetByTutorSessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.decryptAll(messages)
	return messages, nil
}

func (s *ChatMessageService) ListForCourse(ctx context.Context, userID, courseID uuid.UUID) ([]*domain.ChatMessage, error) {
	messages, err := s.messageRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for _, message := range messages {
		if message.UserID != userID {
			return nil, domain.ErrChatMessageNotFound
		}
	}
	s.decryptAll(messages)
	return messages, nil
}

type ChatMessageUpdate struct {
	Role    domain.ChatRole
	Message string
}

func (s *ChatMessageService) Update(ctx context.Context, userID, messageID uuid.UUID, update ChatMessageUpdate) (*ChatMessageView, error) {
	if !update.Role.Valid() {
		return nil, ErrInvalidChatRole
	}

	message, err := s.ownedMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt(update.Message)
	if err != nil {
		return nil, err
	}
	message.Role = update.Role
	message.Message = encrypted
	if err := s.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}

	return &ChatMessageView{
		ID:                message.ID,
		Role:              message.Role,
		Message:           update.Message,
		TutorSessionID:    message.TutorSessionID,
		TutorSessionTitle: message.TutorSession.Title,
		CourseName:        message.Course.Name,
		CreatedAt:         message.CreatedAt,
	}, nil
}

func (s *ChatMessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	if _, err := s.ownedMessage(ctx, userID, messageID); err != nil {
		return err
	}
	return s.messageRepo.Delete(ctx, messageID)
}

func (s *ChatMessageService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.TutorSession, error) {
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

func (s *ChatMessageService) ownedMessage(ctx context.Context, userID, messageID uuid.UUID) (*domain.ChatMessage, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChatMessageNotFound
		}
		return nil, err
	}
	if message.UserID != userID {
		return nil, domain.ErrChatMessageNotFound
	}
	return message, nil
}

func (s *ChatMessageService) store(ctx context.Context, userID uuid.UUID, session *domain.TutorSession, role domain.ChatRole, text string) (*domain.ChatMessage, error) {
	encrypted, err := s.cipher.Encrypt(text)
	if err != nil {
		return nil, err
	}
	message := &domain.ChatMessage{
		ID:             uuid.New(),
		Role:           role,
		Message:        encrypted,
		TutorSessionID: session.ID,
		CourseID:       session.CourseID,
		UserID:         userID,
		CreatedAt:      time.Now(),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatMessageService) sessionHistory(ctx context.Context, sessionID uuid.UUID) ([]gateway.ChatTurn, error) {
	messages, err := s.messageRepo.GetByTutorSessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history := make([]gateway.ChatTurn, 0, len(messages))
	for _, message := range messages {
		history = append(history, gateway.ChatTurn{
			Role:    string(message.Role),
			Content: s.decryptText(message.Message),
		})
	}
	return history, nil
}

// courseMaterial concatenates the extracted content of the course's drive
// files. Gateway failures are logged and skipped so tutoring keeps working
// without materials.
func (s *ChatMessageService) courseMaterial(ctx context.Context, userID, courseID uuid.UUID) string {
	files, err := s.fileRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		log.Printf("ERROR [service.ChatMessage] failed to load course files: %v", err)
		return ""
	}

	var parts []string
	for _, file := range files {
		if file.DriveFileID == "" {
			continue
		}
		content, err := s.drive.ReadFile(ctx, userID, file.DriveFileID)
		if err != nil || content.Error != "" {
			log.Printf("ERROR [service.ChatMessage] failed to read drive file %s: %v", file.DriveFileID, err)
			continue
		}
		parts = append(parts, "## "+file.Name+"\n"+content.Content)
	}
	return strings.Join(parts, "\n\n")
}

// decryptText tolerates rows written before encryption existed: when the
// stored value is not a valid ciphertext it is returned as-is.
func (s *ChatMessageService) decryptText(stored string) string {
	plaintext, err := s.cipher.Decrypt(stored)
	if err != nil {
		return stored
	}
	return plaintext
}

func (s *ChatMessageService) decryptAll(messages []*domain.ChatMessage) {
	for _, message := range messages {
		message.Message = s.decryptText(message.Message)
	}
}
