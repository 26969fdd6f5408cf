package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
)

const videoMaxAge = 24 * time.Hour

// Narrator turns document text into a short voiceover script.
type Narrator interface {
	NarrationScript(ctx context.Context, documentText string) string
}

// SpeechSynthesizer renders narration text to an audio file.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) error
}

// VideoService runs the full pipeline: drive read, script generation,
// narration synthesis, template composition, cleanup.
type VideoService struct {
	drive    DriveReader
	narrator Narrator
	tts      SpeechSynthesizer
	video    *gateway.VideoGateway
}

func NewVideoService(drive DriveReader, narrator Narrator, tts SpeechSynthesizer, video *gateway.VideoGateway) *VideoService {
	return &VideoService{
		drive:    drive,
		narrator: narrator,
		tts:      tts,
		video:    video,
	}
}

type VideoResult struct {
	VideoID  string `json:"videoId"`
	VideoURL string `json:"videoUrl"`
	Status   string `json:"status"`
}

func (s *VideoService) Generate(ctx context.Context, userID uuid.UUID, driveFileID, title, templateName string) (*VideoResult, error) {
	documentText := ""
	if content, err := s.drive.ReadFile(ctx, userID, driveFileID); err == nil && content.Error == "" {
		documentText = content.Content
	} else {
		log.Printf("ERROR [service.Video] failed to read drive file %s: %v", driveFileID, err)
	}

	script := s.narrator.NarrationScript(ctx, documentText)

	audioPath := filepath.Join(s.video.TempDir, fmt.Sprintf("audio_%s.mp3", randomHex(16)))
	if err := s.tts.Synthesize(ctx, script, audioPath); err != nil {
		return nil, fmt.Errorf("synthesize narration: %w", err)
	}
	defer os.Remove(audioPath)

	outputName := fmt.Sprintf("%s_video_%s.mp4", userID, randomHex(16))
	outputPath, err := s.video.Compose(ctx, templateName, audioPath, title, outputName)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(outputPath)
	return &VideoResult{
		VideoID:  name[:len(name)-len(filepath.Ext(name))],
		VideoURL: "/api/v1/video/" + name,
		Status:   "completed",
	}, nil
}

// CleanupOldVideos is scheduled fire-and-forget after a generation response.
func (s *VideoService) CleanupOldVideos() {
	s.video.CleanupOldOutputs(videoMaxAge)
}

func (s *VideoService) ListTemplates() ([]gateway.TemplateInfo, error) {
	return s.video.ListTemplates()
}

// OutputPath resolves a generated video by filename, rejecting anything that
// escapes the outputs directory.
func (s *VideoService) OutputPath(filename string) (string, error) {
	path := filepath.Join(s.video.OutputsDir, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
