package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhall/ai-tutor-api/internal/api/middleware"
	"github.com/studyhall/ai-tutor-api/internal/service"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

type GenerateVideoRequest struct {
	DriveFileID  string `json:"driveFileId"`
	Title        string `json:"title"`
	TemplateName string `json:"templateName"`
}

func (h *VideoHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req GenerateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.DriveFileID == "" || req.Title == "" || req.TemplateName == "" {
		http.Error(w, "driveFileId, title and templateName are required", http.StatusBadRequest)
		return
	}

	result, err := h.videoService.Generate(r.Context(), userID, req.DriveFileID, req.Title, req.TemplateName)
	if err != nil {
		writeError(w, err)
		return
	}

	// Old renders are swept after the response is written.
	go h.videoService.CleanupOldVideos()

	writeJSON(w, http.StatusOK, result)
}

func (h *VideoHandler) Serve(w http.ResponseWriter, r *http.Request) {
	path, err := h.videoService.OutputPath(chi.URLParam(r, "filename"))
	if err != nil {
		http.Error(w, "Video not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, path)
}

func (h *VideoHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.videoService.ListTemplates()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (h *VideoHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	h.videoService.CleanupOldVideos()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cleanup completed"})
}
