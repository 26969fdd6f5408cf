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

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type FileResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DriveFileID string    `json:"driveFileId"`
	CourseID    string    `json:"courseId"`
	CourseName  string    `json:"courseName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toFileResponse(f *domain.File) FileResponse {
	return FileResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		DriveFileID: f.DriveFileID,
		CourseID:    f.CourseID.String(),
		CourseName:  f.Course.Name,
		CreatedAt:   f.CreatedAt,
	}
}

func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req struct {
		Name        string `json:"name"`
		CourseID    string `json:"courseId"`
		DriveFileID string `json:"driveFileId"`
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

	file, err := h.fileService.Create(r.Context(), userID, service.FileInput{
		Name:        req.Name,
		CourseID:    courseID,
		DriveFileID: req.DriveFileID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFileResponse(file))
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	files, err := h.fileService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]FileResponse, 0, len(files))
	for _, f := range files {
		resp = append(resp, toFileResponse(f))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	fileID, ok := pathID(r, "fileID")
	if !ok {
		writeError(w, domain.ErrFileNotFound)
		return
	}

	file, err := h.fileService.Get(r.Context(), userID, fileID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFileResponse(file))
}

func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	fileID, ok := pathID(r, "fileID")
	if !ok {
		writeError(w, domain.ErrFileNotFound)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	file, err := h.fileService.Rename(r.Context(), userID, fileID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFileResponse(file))
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	fileID, ok := pathID(r, "fileID")
	if !ok {
		writeError(w, domain.ErrFileNotFound)
		return
	}

	if err := h.fileService.Delete(r.Context(), userID, fileID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted"})
}
