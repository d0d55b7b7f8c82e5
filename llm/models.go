// Package llm provides shared data models for LLM providers.
package llm

import "strings"

// Role identifies the sender of a message in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Part is one element of a multi-part message body. Exactly one of
// Text or ImageB64 is set.
type Part struct {
	Text     string `json:"text,omitempty"`
	ImageB64 string `json:"image_b64,omitempty"`
}

// Message represents a single conversation entry. Content carries the
// plain-text body; Parts, when non-empty, carries an ordered mixed
// text/image body instead.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Parts   []Part `json:"parts,omitempty"`
}

// Text flattens the message to its text components, preserving order.
// Vendors without a multimodal field send this instead of Parts.
func (m Message) Text() string {
	if len(m.Parts) == 0 {
		return m.Content
	}
	var texts []string
	for _, p := range m.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// TokenUsage contains token usage statistics for one generation call.
type TokenUsage struct {
	PromptTokens     uint32
	CompletionTokens uint32
	TotalTokens      uint32
}

// Reply is the result of a generation call. Generate never fails from
// the caller's point of view: on any error Text holds a
// user-presentable sentence, Usage is nil, and Model is empty.
type Reply struct {
	Text  string
	Usage *TokenUsage
	Model string
}

// Failed reports whether the reply represents a failed generation.
func (r Reply) Failed() bool {
	return r.Model == ""
}
