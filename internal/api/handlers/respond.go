package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Detail any `json:"detail"`
}

// writeError maps service errors onto the API taxonomy: 422 with field
// detail for validation, 409 for uniqueness conflicts, 404 for ownership or
// missing rows, 401 for authentication, 500 otherwise.
func writeError(w http.ResponseWriter, err error) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: validation.Fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateCourseName),
		errors.Is(err, domain.ErrDuplicateFileName):
		writeJSON(w, http.StatusConflict, errorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrFileNotFound),
		errors.Is(err, domain.ErrTutorSessionNotFound),
		errors.Is(err, domain.ErrChatMessageNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNoStoredToken),
		errors.Is(err, gateway.ErrTemplateNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrCouldNotValidate),
		errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrMissingRefresh),
		errors.Is(err, service.ErrInvalidChatRole):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		log.Printf("ERROR [handlers] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
	}
}
