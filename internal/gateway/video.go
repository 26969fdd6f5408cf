package gateway

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// VideoGateway assembles output videos with the ffmpeg binary: template
// video stripped of its own audio, narration layered on, title drawn
// centered. Output duration is the shorter of the two inputs.
type VideoGateway struct {
	TemplatesDir string
	OutputsDir   string
	TempDir      string
}

func NewVideoGateway(assetsDir string) (*VideoGateway, error) {
	g := &VideoGateway{
		TemplatesDir: filepath.Join(assetsDir, "templates"),
		OutputsDir:   filepath.Join(assetsDir, "outputs"),
		TempDir:      filepath.Join(assetsDir, "temp"),
	}
	for _, dir := range []string{g.TemplatesDir, g.OutputsDir, g.TempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create assets dir %s: %w", dir, err)
		}
	}
	return g, nil
}

type TemplateInfo struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Created int64  `json:"created"`
}

func (g *VideoGateway) ListTemplates() ([]TemplateInfo, error) {
	matches, err := filepath.Glob(filepath.Join(g.TemplatesDir, "*.mp4"))
	if err != nil {
		return nil, err
	}
	templates := make([]TemplateInfo, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		templates = append(templates, TemplateInfo{
			Name:    filepath.Base(path),
			Size:    info.Size(),
			Created: info.ModTime().Unix(),
		})
	}
	return templates, nil
}

var ErrTemplateNotFound = fmt.Errorf("template video not found")

// Compose muxes narration audio over the named template and writes the
// result into the outputs directory under outputName.
func (g *VideoGateway) Compose(ctx context.Context, templateName, audioPath, title, outputName string) (string, error) {
	templatePath := filepath.Join(g.TemplatesDir, filepath.Base(templateName))
	if _, err := os.Stat(templatePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	outputPath := filepath.Join(g.OutputsDir, filepath.Base(outputName))
	drawtext := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:fontsize=50:x=(w-text_w)/2:y=(h-text_h)/2",
		escapeDrawtext(title),
	)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", templatePath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-vf", drawtext,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-r", "30",
		"-shortest",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return outputPath, nil
}

// CleanupOldOutputs removes generated videos older than maxAge.
func (g *VideoGateway) CleanupOldOutputs(maxAge time.Duration) {
	matches, err := filepath.Glob(filepath.Join(g.OutputsDir, "*.mp4"))
	if err != nil {
		log.Printf("ERROR [gateway.Video] cleanup glob failed: %v", err)
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Printf("ERROR [gateway.Video] failed to remove %s: %v", path, err)
			}
		}
	}
}

func escapeDrawtext(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	return s
}
