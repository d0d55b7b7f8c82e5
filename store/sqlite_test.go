package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/saraans/ava/llm"
)

func TestSqliteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ava.db")

	s, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	msgs := []llm.Message{
		llm.UserMessage("hello"),
		llm.AssistantMessage("hi"),
	}
	for _, m := range msgs {
		if err := s.Append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	s.Close()

	reloaded, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reloaded.Close()
	if !reflect.DeepEqual(reloaded.History(), msgs) {
		t.Errorf("reloaded history differs:\n got %+v\nwant %+v", reloaded.History(), msgs)
	}
}

func TestSqliteStorePartsSurviveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ava.db")
	s, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	msg := llm.Message{
		Role: llm.RoleUser,
		Parts: []llm.Part{
			{Text: "what is this"},
			{ImageB64: "aGVsbG8="},
		},
	}
	if err := s.Append(msg); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	reloaded, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reloaded.Close()

	history := reloaded.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 message, got %d", len(history))
	}
	if !reflect.DeepEqual(history[0].Parts, msg.Parts) {
		t.Errorf("parts differ: got %+v want %+v", history[0].Parts, msg.Parts)
	}
}

func TestSqliteStoreClearStartsFresh(t *testing.T) {
	s, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	s.Append(llm.UserMessage("old turn"))
	firstID := s.conversationID

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.History()) != 0 {
		t.Error("expected empty history after clear")
	}
	if s.conversationID == firstID {
		t.Error("clear should start a fresh conversation id")
	}
}
