package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/api/middleware"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/service"
)

type ChatMessageHandler struct {
	messageService *service.ChatMessageService
}

func NewChatMessageHandler(messageService *service.ChatMessageService) *ChatMessageHandler {
	return &ChatMessageHandler{messageService: messageService}
}

type ChatMessageResponse struct {
	ID             string          `json:"id"`
	Role           domain.ChatRole `json:"role"`
	Message        string          `json:"message"`
	TutorSessionID string          `json:"tutorSessionId"`
	CourseID       string          `json:"courseId"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func toChatMessageResponses(messages []*domain.ChatMessage) []ChatMessageResponse {
	resp := make([]ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, ChatMessageResponse{
			ID:             m.ID.String(),
			Role:           m.Role,
			Message:        m.Message,
			TutorSessionID: m.TutorSessionID.String(),
			CourseID:       m.CourseID.String(),
			CreatedAt:      m.CreatedAt,
		})
	}
	return resp
}

// Create stores the user's message and replies with the generated
// assistant message for the session.
func (h *ChatMessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req struct {
		TutorSessionID string `json:"tutorSessionId"`
		Message        string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sessionID, err := uuid.Parse(req.TutorSessionID)
	if err != nil {
		writeError(w, domain.ErrTutorSessionNotFound)
		return
	}

	reply, err := h.messageService.Create(r.Context(), userID, service.ChatMessageInput{
		TutorSessionID: sessionID,
		Message:        req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (h *ChatMessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	messages, err := h.messageService.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChatMessageResponses(messages))
}

func (h *ChatMessageHandler) ListForSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID, ok := pathID(r, "sessionID")
	if !ok {
		writeError(w, domain.ErrTutorSessionNotFound)
		return
	}

	messages, err := h.messageService.ListForSession(r.Context(), userID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChatMessageResponses(messages))
}

func (h *ChatMessageHandler) ListForCourse(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	courseID, ok := pathID(r, "courseID")
	if !ok {
		writeError(w, domain.ErrCourseNotFound)
		return
	}

	messages, err := h.messageService.ListForCourse(r.Context(), userID, courseID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toChatMessageResponses(messages))
}

func (h *ChatMessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	messageID, ok := pathID(r, "messageID")
	if !ok {
		writeError(w, domain.ErrChatMessageNotFound)
		return
	}

	view, err := h.messageService.Get(r.Context(), userID, messageID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ChatMessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	messageID, ok := pathID(r, "messageID")
	if !ok {
		writeError(w, domain.ErrChatMessageNotFound)
		return
	}

	var req struct {
		Role    domain.ChatRole `json:"role"`
		Message string          `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.messageService.Update(r.Context(), userID, messageID, service.ChatMessageUpdate{
		Role:    req.Role,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ChatMessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	messageID, ok := pathID(r, "messageID")
	if !ok {
		writeError(w, domain.ErrChatMessageNotFound)
		return
	}

	if err := h.messageService.Delete(r.Context(), userID, messageID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat message deleted"})
}
