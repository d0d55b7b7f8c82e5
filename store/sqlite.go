// SQLite conversation storage.
//
// Information Hiding:
// - Connection management and schema encapsulated
// - The active conversation row is resumed across restarts

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/saraans/ava/llm"
)

// SqliteStore implements Conversation over a SQLite database file. The
// most recently created conversation row is resumed at open; Clear
// starts a fresh one.
type SqliteStore struct {
	db             *sql.DB
	conversationID string
	messages       []llm.Message
}

// OpenSqlite opens or creates a SQLite conversation log at path,
// creating parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open SQLite database: %w", err)
	}
	return initSqlite(db)
}

// NewSqliteInMemory creates an in-memory store (useful for testing).
func NewSqliteInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("create in-memory SQLite: %w", err)
	}
	return initSqlite(db)
}

func initSqlite(db *sql.DB) (*SqliteStore, error) {
	s := &SqliteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if err := s.resume(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			parts TEXT,
			FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE,
			UNIQUE(conversation_id, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_messages_conversation
		ON messages(conversation_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// resume picks up the latest conversation, creating one if none exists,
// and loads its messages. Unreadable rows are skipped, not fatal.
func (s *SqliteStore) resume() error {
	err := s.db.QueryRow(
		`SELECT id FROM conversations ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&s.conversationID)
	if err == sql.ErrNoRows {
		return s.startConversation()
	}
	if err != nil {
		return fmt.Errorf("resume conversation: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT role, content, parts FROM messages WHERE conversation_id = ? ORDER BY seq`,
		s.conversationID,
	)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role, content string
		var partsJSON sql.NullString
		if err := rows.Scan(&role, &content, &partsJSON); err != nil {
			slog.Warn("store: skipping unreadable message row", "err", err)
			continue
		}
		msg := llm.Message{Role: llm.Role(role), Content: content}
		if partsJSON.Valid && partsJSON.String != "" {
			if err := json.Unmarshal([]byte(partsJSON.String), &msg.Parts); err != nil {
				slog.Warn("store: corrupt message parts, keeping text only", "err", err)
			}
		}
		s.messages = append(s.messages, msg)
	}
	return rows.Err()
}

func (s *SqliteStore) startConversation() error {
	s.conversationID = uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO conversations (id) VALUES (?)`, s.conversationID)
	if err != nil {
		return fmt.Errorf("start conversation: %w", err)
	}
	return nil
}

// Append adds a message to the log. The in-memory log grows even when
// the insert fails.
func (s *SqliteStore) Append(msg llm.Message) error {
	seq := len(s.messages)
	s.messages = append(s.messages, msg)

	var partsJSON any
	if len(msg.Parts) > 0 {
		encoded, err := json.Marshal(msg.Parts)
		if err != nil {
			return fmt.Errorf("encode message parts: %w", err)
		}
		partsJSON = string(encoded)
	}

	_, err := s.db.Exec(
		`INSERT INTO messages (conversation_id, seq, role, content, parts) VALUES (?, ?, ?, ?, ?)`,
		s.conversationID, seq, string(msg.Role), msg.Content, partsJSON,
	)
	if err != nil {
		return fmt.Errorf("persist message: %w", err)
	}
	return nil
}

// History returns a copy of the ordered message sequence.
func (s *SqliteStore) History() []llm.Message {
	history := make([]llm.Message, len(s.messages))
	copy(history, s.messages)
	return history
}

// Clear wipes the in-memory log and starts a fresh conversation row.
func (s *SqliteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM messages WHERE conversation_id = ?`, s.conversationID); err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}
	s.messages = nil
	return s.startConversation()
}

// Verify SqliteStore implements Conversation.
var _ Conversation = (*SqliteStore)(nil)
