// Screen-reading tool. Capture itself is an external collaborator
// behind the ScreenCapturer interface; this tool owns the
// capture-analyze-cleanup sequence and guarantees the temporary
// capture file is removed on every exit path.

package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/saraans/ava/llm"
)

// ScreenCapturer captures the current screen to a file under dir and
// returns its path.
type ScreenCapturer interface {
	CaptureScreen(dir string) (string, error)
}

// ScreenTool describes what is on screen by sending a capture to a
// vision-capable provider with the raw utterance as the prompt.
type ScreenTool struct {
	capturer ScreenCapturer
	analyzer llm.VisionAnalyzer
	tempDir  string
}

// NewScreenTool creates a screen tool writing captures under tempDir.
func NewScreenTool(capturer ScreenCapturer, analyzer llm.VisionAnalyzer, tempDir string) *ScreenTool {
	return &ScreenTool{capturer: capturer, analyzer: analyzer, tempDir: tempDir}
}

// Kind returns KindScreen.
func (t *ScreenTool) Kind() Kind {
	return KindScreen
}

// Execute captures the screen, asks the analyzer about it, and removes
// the capture whether or not analysis succeeds.
func (t *ScreenTool) Execute(ctx context.Context, inv Invocation) (string, error) {
	path, err := t.capturer.CaptureScreen(t.tempDir)
	if err != nil {
		return "", fmt.Errorf("capture screen: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("screen: failed to delete capture", "path", path, "err", err)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read capture: %w", err)
	}

	description, err := t.analyzer.AnalyzeImage(ctx, base64.StdEncoding.EncodeToString(data), inv.Utterance)
	if err != nil {
		return "", fmt.Errorf("read screen: %w", err)
	}
	return description, nil
}

// Verify ScreenTool implements Tool.
var _ Tool = (*ScreenTool)(nil)
