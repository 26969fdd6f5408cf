package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/api/middleware"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/service"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

type CourseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCourseResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		UserID:    c.UserID.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// pathID pulls a UUID route parameter; a malformed value behaves like a
// record the caller does not own.
func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req service.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	course, err := h.courseService.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCourseResponse(course))
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	courses, err := h.courseService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, toCourseResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	courseID, ok := pathID(r, "courseID")
	if !ok {
		writeError(w, domain.ErrCourseNotFound)
		return
	}

	course, err := h.courseService.Get(r.Context(), userID, courseID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	courseID, ok := pathID(r, "courseID")
	if !ok {
		writeError(w, domain.ErrCourseNotFound)
		return
	}

	var req service.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	course, err := h.courseService.Update(r.Context(), userID, courseID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	courseID, ok := pathID(r, "courseID")
	if !ok {
		writeError(w, domain.ErrCourseNotFound)
		return
	}

	if err := h.courseService.Delete(r.Context(), userID, courseID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}
