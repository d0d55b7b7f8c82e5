// Camera tool. Frame acquisition is an external collaborator supplied
// as a CaptureFunc; the FrameBuffer refreshes a single latest-frame
// slot on its own background cadence, independent of turn processing.

package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saraans/ava/llm"
)

// CaptureFunc produces one encoded (JPEG) camera frame.
type CaptureFunc func() ([]byte, error)

// FrameBuffer keeps the most recent camera frame. Writes come from a
// background goroutine; reads never block beyond the mutex around the
// single shared slot.
type FrameBuffer struct {
	capture  CaptureFunc
	interval time.Duration

	mu     sync.Mutex
	latest []byte

	stop chan struct{}
	done chan struct{}
}

// defaultFrameInterval is used when no positive refresh interval is
// given; time.NewTicker rejects anything else.
const defaultFrameInterval = time.Second

// NewFrameBuffer creates a frame buffer refreshing at the given
// interval. A zero or negative interval falls back to the default.
// Call Start to begin capturing and Stop to shut down.
func NewFrameBuffer(capture CaptureFunc, interval time.Duration) *FrameBuffer {
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	return &FrameBuffer{
		capture:  capture,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background capture loop.
func (b *FrameBuffer) Start() {
	go func() {
		defer close(b.done)
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()
		for {
			select {
			case <-b.stop:
				return
			case <-ticker.C:
				frame, err := b.capture()
				if err != nil {
					slog.Warn("camera: frame capture failed", "err", err)
					continue
				}
				b.mu.Lock()
				b.latest = frame
				b.mu.Unlock()
			}
		}
	}()
}

// Stop ends the capture loop and waits for it to exit.
func (b *FrameBuffer) Stop() {
	close(b.stop)
	<-b.done
}

// Latest returns a copy of the most recent frame, if any.
func (b *FrameBuffer) Latest() ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return nil, false
	}
	frame := make([]byte, len(b.latest))
	copy(frame, b.latest)
	return frame, true
}

// CameraTool describes what the camera currently sees.
type CameraTool struct {
	frames   *FrameBuffer
	analyzer llm.VisionAnalyzer
}

// NewCameraTool creates a camera tool reading from the frame buffer.
func NewCameraTool(frames *FrameBuffer, analyzer llm.VisionAnalyzer) *CameraTool {
	return &CameraTool{frames: frames, analyzer: analyzer}
}

// Kind returns KindCamera.
func (t *CameraTool) Kind() Kind {
	return KindCamera
}

// Execute sends the latest camera frame to the analyzer with the raw
// utterance as the prompt.
func (t *CameraTool) Execute(ctx context.Context, inv Invocation) (string, error) {
	frame, ok := t.frames.Latest()
	if !ok {
		return "", fmt.Errorf("no camera frame available yet")
	}
	description, err := t.analyzer.AnalyzeImage(ctx, base64.StdEncoding.EncodeToString(frame), inv.Utterance)
	if err != nil {
		return "", fmt.Errorf("look through camera: %w", err)
	}
	return "[Visual Observation]: " + description, nil
}

// Verify CameraTool implements Tool.
var _ Tool = (*CameraTool)(nil)
