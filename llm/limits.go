package llm

// Context window sizes per model, for user-facing budget display only.
// This is a static lookup, never a network call, and it never truncates
// history.
var contextLimits = map[string]int{
	// OpenRouter-hosted models
	"meta-llama/llama-3.3-70b-instruct": 128000,
	"google/gemini-2.0-flash-exp:free":  1000000,
	"deepseek/deepseek-chat":            64000,

	// Cohere
	"command-a-03-2025": 256000,
	"command-r-plus":    128000,

	// Gemini
	"gemini-2.0-flash": 1000000,
	"gemini-1.5-flash": 1000000,

	// Anthropic
	"claude-sonnet-4-20250514": 200000,
	"claude-haiku-4-20250514":  200000,

	// Local Ollama models
	"llama3": 8192,
	"qwen3":  32768,
}

// defaultContextLimit is the conservative fallback for unknown models.
const defaultContextLimit = 4096

// ContextLimit returns the token budget for a model, falling back to a
// small conservative default when the model is unknown.
func ContextLimit(model string) int {
	if limit, ok := contextLimits[model]; ok {
		return limit
	}
	return defaultContextLimit
}
