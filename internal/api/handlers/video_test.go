package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/api/handlers"
	"github.com/studyhall/ai-tutor-api/internal/api/middleware"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDriveReader struct{}

func (stubDriveReader) ReadFile(ctx context.Context, userID uuid.UUID, fileID string) (*gateway.DriveFileContent, error) {
	return &gateway.DriveFileContent{Content: "photosynthesis notes"}, nil
}

type stubNarrator struct{}

func (stubNarrator) NarrationScript(ctx context.Context, documentText string) string {
	return "Today we cover photosynthesis."
}

// stubSynthesizer writes a placeholder audio file so the pipeline reaches
// template composition.
type stubSynthesizer struct{}

func (stubSynthesizer) Synthesize(ctx context.Context, text, outputPath string) error {
	return os.WriteFile(outputPath, []byte("audio"), 0o644)
}

func TestVideoHandler_GenerateMissingTemplate(t *testing.T) {
	videoGateway, err := gateway.NewVideoGateway(t.TempDir())
	require.NoError(t, err)

	svc := service.NewVideoService(stubDriveReader{}, stubNarrator{}, stubSynthesizer{}, videoGateway)
	handler := handlers.NewVideoHandler(svc)

	body := strings.NewReader(`{"driveFileId":"doc-1","title":"My Reel","templateName":"nope.mp4"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/video/generate", body)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, uuid.New()))

	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code,
		"an unknown template must read as a missing resource, not a server fault")
	assert.Contains(t, rec.Body.String(), "template video not found")
}
