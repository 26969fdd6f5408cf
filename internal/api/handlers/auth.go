package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/api/middleware"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/service"
)

const (
	oauthStateCookie = "google_oauth_state"
	oauthUserCookie  = "google_oauth_user"
)

type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
	oauth        *gateway.GoogleOAuth
	frontendURL  string
}

func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService, oauth *gateway.GoogleOAuth, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		oauth:        oauth,
		frontendURL:  frontendURL,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *AuthHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	if err := h.authService.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// GoogleLogin starts the Drive consent flow for the signed-in user. The
// state value is echoed back through a short-lived cookie and checked in
// the callback; a second cookie carries the user the grant belongs to,
// since the bearer token does not survive the redirect round trip.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	state, err := randomState()
	if err != nil {
		log.Printf("ERROR [auth] generating oauth state: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setFlowCookie(w, oauthStateCookie, state)
	setFlowCookie(w, oauthUserCookie, userID.String())

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid oauth state", http.StatusBadRequest)
		return
	}

	userCookie, err := r.Cookie(oauthUserCookie)
	if err != nil {
		http.Error(w, "Invalid oauth state", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(userCookie.Value)
	if err != nil {
		http.Error(w, "Invalid oauth state", http.StatusBadRequest)
		return
	}

	clearFlowCookie(w, oauthStateCookie)
	clearFlowCookie(w, oauthUserCookie)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	creds, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("ERROR [auth] exchanging google code: %v", err)
		http.Error(w, "Could not complete Google sign-in", http.StatusBadGateway)
		return
	}

	if err := h.tokenService.UpdateAuthToken(r.Context(), userID, creds); err != nil {
		writeError(w, err)
		return
	}

	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func setFlowCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearFlowCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
