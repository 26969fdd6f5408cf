package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNarrator struct{ script string }

func (f *fakeNarrator) NarrationScript(ctx context.Context, documentText string) string {
	return f.script
}

type fakeSynthesizer struct{ err error }

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, outputPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("audio"), 0o644)
}

func newVideoService(t *testing.T) (*service.VideoService, *gateway.VideoGateway) {
	t.Helper()
	videoGateway, err := gateway.NewVideoGateway(t.TempDir())
	require.NoError(t, err)
	svc := service.NewVideoService(
		&fakeDrive{content: map[string]string{"doc": "some document"}},
		&fakeNarrator{script: "a short narration"},
		&fakeSynthesizer{},
		videoGateway,
	)
	return svc, videoGateway
}

func TestVideoService_GenerateMissingTemplate(t *testing.T) {
	svc, _ := newVideoService(t)

	_, err := svc.Generate(context.Background(), uuid.New(), "doc", "My Reel", "missing.mp4")
	assert.ErrorIs(t, err, gateway.ErrTemplateNotFound)
}

func TestVideoService_OutputPath(t *testing.T) {
	svc, videoGateway := newVideoService(t)

	rendered := filepath.Join(videoGateway.OutputsDir, "abc_video_1.mp4")
	require.NoError(t, os.WriteFile(rendered, []byte("mp4"), 0o644))

	t.Run("existing output", func(t *testing.T) {
		path, err := svc.OutputPath("abc_video_1.mp4")
		require.NoError(t, err)
		assert.Equal(t, rendered, path)
	})

	t.Run("missing output", func(t *testing.T) {
		_, err := svc.OutputPath("nope.mp4")
		assert.Error(t, err)
	})

	t.Run("path traversal is flattened", func(t *testing.T) {
		path, err := svc.OutputPath("../../etc/../" + "abc_video_1.mp4")
		require.NoError(t, err)
		assert.Equal(t, rendered, path, "only the base name may select a file")
	})
}

func TestVideoService_ListTemplates(t *testing.T) {
	svc, videoGateway := newVideoService(t)

	require.NoError(t, os.WriteFile(filepath.Join(videoGateway.TemplatesDir, "stars.mp4"), []byte("t"), 0o644))

	templates, err := svc.ListTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "stars.mp4", templates[0].Name)
}
