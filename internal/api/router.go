package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/studyhall/ai-tutor-api/internal/api/handlers"
	"github.com/studyhall/ai-tutor-api/internal/api/middleware"
	"github.com/studyhall/ai-tutor-api/internal/config"
	"github.com/studyhall/ai-tutor-api/internal/service"
)

func NewRouter(services *service.Services, gateways *service.Gateways, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, services.Token, gateways.OAuth, cfg.FrontendURL)
	courseHandler := handlers.NewCourseHandler(services.Course)
	fileHandler := handlers.NewFileHandler(services.File)
	sessionHandler := handlers.NewTutorSessionHandler(services.TutorSession)
	messageHandler := handlers.NewChatMessageHandler(services.ChatMessage)
	driveHandler := handlers.NewDriveHandler(services.Token, gateways.Drive)
	videoHandler := handlers.NewVideoHandler(services.Video)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public user routes
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/auth/google/callback", authHandler.GoogleCallback)

			// Protected user routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Delete("/me", authHandler.DeleteMe)
				r.Get("/auth/google", authHandler.GoogleLogin)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/courses", func(r chi.Router) {
				r.Post("/", courseHandler.Create)
				r.Get("/", courseHandler.List)
				r.Get("/{courseID}", courseHandler.Get)
				r.Put("/{courseID}", courseHandler.Update)
				r.Delete("/{courseID}", courseHandler.Delete)
				r.Get("/{courseID}/tutor-sessions", sessionHandler.ListForCourse)
				r.Get("/{courseID}/chat-messages", messageHandler.ListForCourse)
			})

			r.Route("/files", func(r chi.Router) {
				r.Post("/", fileHandler.Create)
				r.Get("/", fileHandler.List)
				r.Get("/{fileID}", fileHandler.Get)
				r.Put("/{fileID}", fileHandler.Rename)
				r.Delete("/{fileID}", fileHandler.Delete)
			})

			r.Route("/tutor-sessions", func(r chi.Router) {
				r.Post("/", sessionHandler.Create)
				r.Get("/", sessionHandler.List)
				r.Get("/{sessionID}", sessionHandler.Get)
				r.Put("/{sessionID}", sessionHandler.UpdateTitle)
				r.Post("/{sessionID}/end", sessionHandler.End)
				r.Delete("/{sessionID}", sessionHandler.Delete)
				r.Get("/{sessionID}/chat-messages", messageHandler.ListForSession)
			})

			r.Route("/chat-messages", func(r chi.Router) {
				r.Post("/", messageHandler.Create)
				r.Get("/", messageHandler.List)
				r.Get("/{messageID}", messageHandler.Get)
				r.Put("/{messageID}", messageHandler.Update)
				r.Delete("/{messageID}", messageHandler.Delete)
			})

			r.Route("/drive", func(r chi.Router) {
				r.Get("/search", driveHandler.Search)
				r.Get("/search/all", driveHandler.SearchAll)
				r.Get("/read", driveHandler.ReadFile)
			})

			r.Route("/video", func(r chi.Router) {
				r.Post("/generate", videoHandler.Generate)
				r.Get("/templates/list", videoHandler.ListTemplates)
				r.Post("/cleanup", videoHandler.Cleanup)
				r.Get("/{filename}", videoHandler.Serve)
			})
		})
	})

	return r
}
