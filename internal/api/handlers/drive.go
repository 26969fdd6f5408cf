package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/studyhall/ai-tutor-api/internal/api/middleware"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/service"
)

const defaultDrivePageSize = 20

type DriveHandler struct {
	tokenService *service.TokenService
	drive        *gateway.DriveGateway
}

func NewDriveHandler(tokenService *service.TokenService, drive *gateway.DriveGateway) *DriveHandler {
	return &DriveHandler{tokenService: tokenService, drive: drive}
}

// ensureToken refreshes the stored Google grant before any Drive call so
// the drive server never sees an expired access token. Responds itself
// when no usable grant exists.
func (h *DriveHandler) ensureToken(w http.ResponseWriter, r *http.Request) bool {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return false
	}
	if _, err := h.tokenService.GetAuthToken(r.Context(), id); err != nil {
		writeError(w, err)
		return false
	}
	return true
}

func (h *DriveHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.ensureToken(w, r) {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Missing query parameter 'q'", http.StatusBadRequest)
		return
	}

	pageSize := defaultDrivePageSize
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}

	result, err := h.drive.Search(r.Context(), userID, query, pageSize)
	if err != nil {
		// Drive outages degrade to an error payload rather than failing
		// the request, matching the behavior elsewhere in the app.
		log.Printf("ERROR [drive] search failed: %v", err)
		result = &gateway.DriveSearchResult{Error: err.Error()}
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DriveHandler) SearchAll(w http.ResponseWriter, r *http.Request) {
	if !h.ensureToken(w, r) {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.drive.Search(r.Context(), userID, "", defaultDrivePageSize)
	if err != nil {
		log.Printf("ERROR [drive] search failed: %v", err)
		result = &gateway.DriveSearchResult{Error: err.Error()}
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DriveHandler) ReadFile(w http.ResponseWriter, r *http.Request) {
	if !h.ensureToken(w, r) {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	fileID := r.URL.Query().Get("q")
	if fileID == "" {
		http.Error(w, "Missing query parameter 'q'", http.StatusBadRequest)
		return
	}

	content, err := h.drive.ReadFile(r.Context(), userID, fileID)
	if err != nil {
		log.Printf("ERROR [drive] read failed: %v", err)
		content = &gateway.DriveFileContent{Error: err.Error()}
	}

	writeJSON(w, http.StatusOK, content)
}
