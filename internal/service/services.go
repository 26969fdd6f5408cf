package service

import (
	"github.com/studyhall/ai-tutor-api/internal/config"
	"github.com/studyhall/ai-tutor-api/internal/cryptoutil"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/repository"
)

type Services struct {
	Auth         *AuthService
	Token        *TokenService
	Course       *CourseService
	File         *FileService
	TutorSession *TutorSessionService
	ChatMessage  *ChatMessageService
	Video        *VideoService
}

// Gateways groups the external adapters the services depend on. They are
// constructed once at startup and injected, never reached as globals.
type Gateways struct {
	OAuth *gateway.GoogleOAuth
	Drive *gateway.DriveGateway
	LLM   *gateway.LLMGateway
	TTS   *gateway.TTSGateway
	Video *gateway.VideoGateway
}

func NewGateways(cfg *config.Config) (*Gateways, error) {
	video, err := gateway.NewVideoGateway(cfg.AssetsDir)
	if err != nil {
		return nil, err
	}
	return &Gateways{
		OAuth: gateway.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.GoogleTokenURL),
		Drive: gateway.NewDriveGateway(cfg.MCPServerURL),
		LLM:   gateway.NewLLMGateway(cfg.OpenAIKey, cfg.OpenAIModel),
		TTS:   gateway.NewTTSGateway(cfg.ElevenLabsKey),
		Video: video,
	}, nil
}

func NewServices(repos *repository.Repositories, gateways *Gateways, cipher *cryptoutil.Cipher, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, cfg),
		Token:        NewTokenService(repos.User, repos.AuthToken, cipher, gateways.OAuth),
		Course:       NewCourseService(repos.Course),
		File:         NewFileService(repos.File, repos.Course),
		TutorSession: NewTutorSessionService(repos.TutorSession, repos.Course),
		ChatMessage:  NewChatMessageService(repos.ChatMessage, repos.TutorSession, repos.File, cipher, gateways.LLM, gateways.Drive),
		Video:        NewVideoService(gateways.Drive, gateways.LLM, gateways.TTS, gateways.Video),
	}
}
