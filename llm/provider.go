// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling
// - Credential pool failover

package llm

import "context"

// englishOnlyClause is prepended ahead of every supplied system prompt
// by every adapter. User and tool text may arrive in any language; the
// spoken reply must not. This is a product invariant, not a preference.
const englishOnlyClause = "CRITICAL PROTOCOL: YOU ARE AN ENGLISH-ONLY AI. NEVER SPEAK HINDI. "

// Provider defines the abstract interface for LLM providers.
// Implementations hide vendor-specific details while exposing a
// consistent interface for generation.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Generate produces a reply for the given history and system
	// prompt. It never returns an error: every failure mode resolves
	// to a user-presentable Reply with nil usage and empty model.
	Generate(ctx context.Context, history []Message, systemPrompt string) Reply
}

// VisionIntent labels whether an utterance asks about the screen, the
// camera, or neither.
type VisionIntent int

const (
	VisionNone VisionIntent = iota
	VisionScreen
	VisionCamera
)

// String returns the classifier label for the intent.
func (v VisionIntent) String() string {
	switch v {
	case VisionScreen:
		return "SCREEN"
	case VisionCamera:
		return "CAMERA"
	default:
		return "NONE"
	}
}

// VisionIntentClassifier is an optional provider capability. Resolve it
// once at construction with a type assertion; its absence only reduces
// routing, it is never an error.
type VisionIntentClassifier interface {
	ClassifyVisionIntent(ctx context.Context, utterance string) VisionIntent
}

// VisionAnalyzer is an optional provider capability for describing an
// image. imageB64 is a base64-encoded JPEG or PNG.
type VisionAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageB64, prompt string) (string, error)
}
