package gateway

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/haguro/elevenlabs-go"
)

const (
	ttsVoiceID = "tnSpp4vdxKPjI9w0GnoV"
	ttsModelID = "eleven_multilingual_v2"
)

// TTSGateway synthesizes narration audio through ElevenLabs.
type TTSGateway struct {
	apiKey  string
	timeout time.Duration
}

func NewTTSGateway(apiKey string) *TTSGateway {
	return &TTSGateway{apiKey: apiKey, timeout: 60 * time.Second}
}

// Synthesize converts text to speech and writes the mp3 to outputPath.
func (g *TTSGateway) Synthesize(ctx context.Context, text, outputPath string) error {
	client := elevenlabs.NewClient(ctx, g.apiKey, g.timeout)

	audio, err := client.TextToSpeech(ttsVoiceID, elevenlabs.TextToSpeechRequest{
		Text:    text,
		ModelID: ttsModelID,
	})
	if err != nil {
		return fmt.Errorf("text to speech: %w", err)
	}

	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return nil
}
