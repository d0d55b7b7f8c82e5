// Package store provides durable conversation storage.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interface
// - Allows swapping between the flat JSON file and SQLite without API
//   changes
package store

import "github.com/saraans/ava/llm"

// Conversation is the append-only ordered log of role-tagged messages,
// the source of truth for multi-turn context. Messages are never
// mutated or reordered; History returns a read-only copy.
//
// Append errors are persistence failures only: the in-memory log has
// already grown and the caller is expected to log and carry on, since
// losing durability is less harmful than aborting the interaction.
type Conversation interface {
	Append(msg llm.Message) error
	History() []llm.Message
	Clear() error
}
