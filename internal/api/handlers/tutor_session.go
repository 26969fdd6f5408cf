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

type TutorSessionHandler struct {
	sessionService *service.TutorSessionService
}

func NewTutorSessionHandler(sessionService *service.TutorSessionService) *TutorSessionHandler {
	return &TutorSessionHandler{sessionService: sessionService}
}

type TutorSessionResponse struct {
	ID        string     `json:"id"`
	Title     *string    `json:"title"`
	CourseID  string     `json:"courseId"`
	UserID    string     `json:"userId"`
	EndedAt   *time.Time `json:"endedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toTutorSessionResponse(s *domain.TutorSession) TutorSessionResponse {
	return TutorSessionResponse{
		ID:        s.ID.String(),
		Title:     s.Title,
		CourseID:  s.CourseID.String(),
		UserID:    s.UserID.String(),
		EndedAt:   s.EndedAt,
		CreatedAt: s.CreatedAt,
	}
}

func (h *TutorSessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req struct {
		CourseID string  `json:"courseId"`
		Title    *string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		writeError(w, domain.ErrCourseNotFound)
		return
	}

	session, err := h.sessionService.Create(r.Context(), userID, service.TutorSessionInput{
		CourseID: courseID,
		Title:    req.Title,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTutorSessionResponse(session))
}

func (h *TutorSessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	sessions, err := h.sessionService.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTutorSessionResponses(sessions))
}

func (h *TutorSessionHandler) ListForCourse(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	courseID, ok := pathID(r, "courseID")
	if !ok {
		writeError(w, domain.ErrCourseNotFound)
		return
	}

	sessions, err := h.sessionService.ListForCourse(r.Context(), userID, courseID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTutorSessionResponses(sessions))
}

func toTutorSessionResponses(sessions []*domain.TutorSession) []TutorSessionResponse {
	resp := make([]TutorSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, toTutorSessionResponse(s))
	}
	return resp
}

func (h *TutorSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID, ok := pathID(r, "sessionID")
	if !ok {
		writeError(w, domain.ErrTutorSessionNotFound)
		return
	}

	session, err := h.sessionService.Get(r.Context(), userID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTutorSessionResponse(session))
}

func (h *TutorSessionHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID, ok := pathID(r, "sessionID")
	if !ok {
		writeError(w, domain.ErrTutorSessionNotFound)
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.UpdateTitle(r.Context(), userID, sessionID, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTutorSessionResponse(session))
}

// End is idempotent; ending an already ended session keeps its original
// end time.
func (h *TutorSessionHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID, ok := pathID(r, "sessionID")
	if !ok {
		writeError(w, domain.ErrTutorSessionNotFound)
		return
	}

	session, err := h.sessionService.End(r.Context(), userID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTutorSessionResponse(session))
}

func (h *TutorSessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID, ok := pathID(r, "sessionID")
	if !ok {
		writeError(w, domain.ErrTutorSessionNotFound)
		return
	}

	if err := h.sessionService.Delete(r.Context(), userID, sessionID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Tutor session deleted"})
}
