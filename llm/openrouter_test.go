package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// newChatServer returns a fake chat-completions endpoint that accepts
// only the given key and counts attempts.
func newChatServer(t *testing.T, goodKey, content string, attempts *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+goodKey {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "invalid key", "type": "auth"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
}

func TestGenerateFailoverStickyIndex(t *testing.T) {
	var attempts atomic.Int32
	server := newChatServer(t, "key-c", "hello there", &attempts)
	defer server.Close()

	p := NewOpenRouterProvider([]string{"key-a", "key-b", "key-c"}, "test-model", 256, 0.7).
		WithBaseURL(server.URL)

	reply := p.Generate(context.Background(), []Message{UserMessage("hi")}, "be brief")

	if reply.Failed() {
		t.Fatalf("expected success, got failure: %q", reply.Text)
	}
	if reply.Text != "hello there" {
		t.Errorf("expected reply text 'hello there', got %q", reply.Text)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("expected exactly 3 attempts (fail, fail, success), got %d", got)
	}
	if p.pool.Current() != 2 {
		t.Errorf("expected sticky current index 2, got %d", p.pool.Current())
	}
	if reply.Usage == nil || reply.Usage.TotalTokens != 15 {
		t.Errorf("expected usage total 15, got %+v", reply.Usage)
	}
	if reply.Model != "test-model" {
		t.Errorf("expected model 'test-model', got %q", reply.Model)
	}

	// Next call starts at the credential that worked.
	attempts.Store(0)
	reply = p.Generate(context.Background(), []Message{UserMessage("again")}, "be brief")
	if reply.Failed() {
		t.Fatalf("expected success on second call, got %q", reply.Text)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("expected 1 attempt after sticky affinity, got %d", got)
	}
}

func TestGenerateAllKeysFail(t *testing.T) {
	var attempts atomic.Int32
	server := newChatServer(t, "no-such-key", "", &attempts)
	defer server.Close()

	p := NewOpenRouterProvider([]string{"key-a", "key-b"}, "test-model", 256, 0.7).
		WithBaseURL(server.URL)

	reply := p.Generate(context.Background(), []Message{UserMessage("hi")}, "be brief")

	if !reply.Failed() {
		t.Fatal("expected failed reply")
	}
	if got := attempts.Load(); got != 2 {
		t.Errorf("expected exactly pool-size (2) attempts, got %d", got)
	}
	if !strings.Contains(reply.Text, "attempt 1") || !strings.Contains(reply.Text, "attempt 2") {
		t.Errorf("aggregated failure must name each attempt, got %q", reply.Text)
	}
	if reply.Usage != nil {
		t.Error("expected nil usage on failure")
	}
	if reply.Model != "" {
		t.Errorf("expected empty model on failure, got %q", reply.Model)
	}
}

func TestGenerateEmptyPoolNoNetwork(t *testing.T) {
	var attempts atomic.Int32
	server := newChatServer(t, "key", "", &attempts)
	defer server.Close()

	p := NewOpenRouterProvider(nil, "test-model", 256, 0.7).WithBaseURL(server.URL)

	reply := p.Generate(context.Background(), []Message{UserMessage("hi")}, "be brief")

	if reply.Text != missingKeyReply {
		t.Errorf("expected fixed missing-key reply, got %q", reply.Text)
	}
	if reply.Usage != nil || reply.Model != "" {
		t.Error("expected absent usage and model")
	}
	if attempts.Load() != 0 {
		t.Errorf("expected zero network attempts, got %d", attempts.Load())
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	p := NewOpenRouterProvider([]string{"key-a"}, "test-model", 256, 0.7).
		WithBaseURL(server.URL)

	reply := p.Generate(context.Background(), []Message{UserMessage("hi")}, "")
	if reply.Text != emptyReply {
		t.Errorf("expected generic empty-response reply, got %q", reply.Text)
	}
}

func TestClassifyVisionIntent(t *testing.T) {
	cases := []struct {
		label string
		want  VisionIntent
	}{
		{"SCREEN", VisionScreen},
		{"CAMERA", VisionCamera},
		{"NONE", VisionNone},
		{"screen.", VisionScreen},
		{"gibberish", VisionNone},
	}

	for _, tc := range cases {
		var attempts atomic.Int32
		server := newChatServer(t, "key-a", tc.label, &attempts)
		p := NewOpenRouterProvider([]string{"key-a"}, "test-model", 256, 0.7).
			WithBaseURL(server.URL)

		got := p.ClassifyVisionIntent(context.Background(), "what do you see")
		if got != tc.want {
			t.Errorf("label %q: expected %v, got %v", tc.label, tc.want, got)
		}
		server.Close()
	}
}

func TestClassifyVisionIntentFailureMapsToNone(t *testing.T) {
	p := NewOpenRouterProvider(nil, "test-model", 256, 0.7)
	if got := p.ClassifyVisionIntent(context.Background(), "anything"); got != VisionNone {
		t.Errorf("expected NONE on failure, got %v", got)
	}
}

func TestAnalyzeImageUsesMultiContent(t *testing.T) {
	var sawImage atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content []struct {
					Type     string `json:"type"`
					ImageURL *struct {
						URL string `json:"url"`
					} `json:"image_url"`
				} `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		for _, m := range req.Messages {
			for _, part := range m.Content {
				if part.Type == "image_url" && part.ImageURL != nil &&
					strings.HasPrefix(part.ImageURL.URL, "data:image/jpeg;base64,") {
					sawImage.Store(true)
				}
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "a desk"}},
			},
		})
	}))
	defer server.Close()

	p := NewOpenRouterProvider([]string{"key-a"}, "test-model", 256, 0.7).
		WithBaseURL(server.URL)

	desc, err := p.AnalyzeImage(context.Background(), "aGVsbG8=", "what is this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc != "a desk" {
		t.Errorf("expected 'a desk', got %q", desc)
	}
	if !sawImage.Load() {
		t.Error("request did not carry a base64 image part")
	}
}
