// Flat JSON file conversation storage. The whole file is rewritten on
// every append via a temp-file rename; there is no incremental format.

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/saraans/ava/llm"
)

// FileStore implements Conversation over a single JSON file holding an
// ordered array of messages. An absent or unparsable file degrades to
// an empty conversation, never an error.
type FileStore struct {
	path     string
	messages []llm.Message
}

// OpenFile opens the conversation log at path, creating parent
// directories as needed and loading whatever history is readable.
func OpenFile(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	s := &FileStore{path: path}
	s.load()
	return s, nil
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("store: load failed, starting empty", "path", s.path, "err", err)
		}
		return
	}
	if err := json.Unmarshal(data, &s.messages); err != nil {
		slog.Warn("store: corrupt log, starting empty", "path", s.path, "err", err)
		s.messages = nil
	}
}

// Append adds a message to the log and rewrites the file. The in-memory
// log grows even when the write fails.
func (s *FileStore) Append(msg llm.Message) error {
	s.messages = append(s.messages, msg)
	return s.persist()
}

// History returns a copy of the ordered message sequence.
func (s *FileStore) History() []llm.Message {
	history := make([]llm.Message, len(s.messages))
	copy(history, s.messages)
	return history
}

// Clear empties the conversation and persists the empty log.
func (s *FileStore) Clear() error {
	s.messages = nil
	return s.persist()
}

func (s *FileStore) persist() error {
	payload := s.messages
	if payload == nil {
		payload = []llm.Message{}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}

	// Atomic rewrite: write a sibling temp file, then rename over the
	// log so a crash never leaves a half-written file behind.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".conversation-*.json")
	if err != nil {
		return fmt.Errorf("write conversation: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write conversation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write conversation: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write conversation: %w", err)
	}
	return nil
}

// Verify FileStore implements Conversation.
var _ Conversation = (*FileStore)(nil)
