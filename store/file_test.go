package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/saraans/ava/llm"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory", "conversation.json")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := []llm.Message{
		llm.UserMessage("hello there"),
		llm.AssistantMessage("hi, how can I help?"),
		llm.UserMessage("what's the weather in Paris [System Data: light rain]"),
	}
	for _, m := range msgs {
		if err := s.Append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	reloaded, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reflect.DeepEqual(reloaded.History(), msgs) {
		t.Errorf("reloaded history differs:\n got %+v\nwant %+v", reloaded.History(), msgs)
	}
}

func TestFileStoreAbsentFileIsEmpty(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.History()) != 0 {
		t.Errorf("expected empty history, got %d messages", len(s.History()))
	}
}

func TestFileStoreCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("corrupt log must not be an error: %v", err)
	}
	if len(s.History()) != 0 {
		t.Errorf("expected empty history from corrupt log, got %d messages", len(s.History()))
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")
	s, _ := OpenFile(path)
	s.Append(llm.UserMessage("remember this"))

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.History()) != 0 {
		t.Error("expected empty history after clear")
	}

	reloaded, _ := OpenFile(path)
	if len(reloaded.History()) != 0 {
		t.Error("clear must persist the empty log")
	}
}

func TestFileStoreHistoryIsCopy(t *testing.T) {
	s, _ := OpenFile(filepath.Join(t.TempDir(), "conversation.json"))
	s.Append(llm.UserMessage("original"))

	history := s.History()
	history[0].Content = "mutated"
	if s.History()[0].Content != "original" {
		t.Error("History must return a copy")
	}
}
