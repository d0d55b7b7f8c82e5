package llm

import (
	"context"
	"testing"
)

// fakeProvider returns a canned reply and records the last call.
type fakeProvider struct {
	reply       Reply
	lastPrompt  string
	lastHistory []Message
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Generate(_ context.Context, history []Message, systemPrompt string) Reply {
	f.lastPrompt = systemPrompt
	f.lastHistory = history
	return f.reply
}

func TestExtractCityTrimsOutput(t *testing.T) {
	p := &fakeProvider{reply: Reply{Text: "  Paris \n", Model: "fake-model"}}
	if got := ExtractCity(context.Background(), p, "weather in Paris"); got != "Paris" {
		t.Errorf("expected 'Paris', got %q", got)
	}
	if len(p.lastHistory) != 0 {
		t.Error("extraction must run with empty history")
	}
}

func TestExtractCityFailureDefaultsToNone(t *testing.T) {
	p := &fakeProvider{reply: Reply{Text: "I apologize, but I encountered an error"}}
	if got := ExtractCity(context.Background(), p, "weather in Paris"); got != "None" {
		t.Errorf("expected sentinel 'None' on failure, got %q", got)
	}
}

func TestExtractNewsTopicEmptyDefaultsToNone(t *testing.T) {
	p := &fakeProvider{reply: Reply{Text: "   ", Model: "fake-model"}}
	if got := ExtractNewsTopic(context.Background(), p, "tell me the news"); got != "None" {
		t.Errorf("expected 'None' for blank output, got %q", got)
	}
}

func TestContextLimitFallback(t *testing.T) {
	if got := ContextLimit("meta-llama/llama-3.3-70b-instruct"); got != 128000 {
		t.Errorf("expected 128000, got %d", got)
	}
	if got := ContextLimit("some-unknown-model"); got != defaultContextLimit {
		t.Errorf("expected conservative default %d, got %d", defaultContextLimit, got)
	}
}

func TestMessageTextFlattensParts(t *testing.T) {
	msg := Message{
		Role: RoleUser,
		Parts: []Part{
			{Text: "first"},
			{ImageB64: "aGVsbG8="},
			{Text: "second"},
		},
	}
	if got := msg.Text(); got != "first\nsecond" {
		t.Errorf("expected ordered text-only flattening, got %q", got)
	}
}

func TestKeyPoolOrderWraps(t *testing.T) {
	pool := NewKeyPool([]string{"a", "b", "c"})
	pool.markGood(2)
	order := pool.order()
	want := []int{2, 0, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}
