package llm

import (
	"context"
	"fmt"
	"strings"
)

// Single-purpose extraction prompts. These run as scoped generation
// calls with empty history, outside the main conversational path.

const cityPrompt = "Extract the city name from this user query: '%s'. Return ONLY the city name. If no city is specified, return 'None'. Do not add any punctuation or extra words."

const topicPrompt = "Extract the news topic or category from this user query: '%s'. Return ONLY the topic keywords (e.g., 'Artificial Intelligence', 'Bitcoin', 'Politics'). If the user asks for general news or doesn't specify a topic, return 'None'. Do not add any punctuation or extra words."

// ExtractCity asks the provider for the city named in text. On any
// failure, or when no city is present, it returns the sentinel "None".
func ExtractCity(ctx context.Context, p Provider, text string) string {
	return extract(ctx, p, fmt.Sprintf(cityPrompt, text))
}

// ExtractNewsTopic asks the provider for the news topic in text. On any
// failure, or when the user wants general headlines, it returns "None".
func ExtractNewsTopic(ctx context.Context, p Provider, text string) string {
	return extract(ctx, p, fmt.Sprintf(topicPrompt, text))
}

func extract(ctx context.Context, p Provider, prompt string) string {
	reply := p.Generate(ctx, nil, prompt)
	if reply.Failed() {
		return "None"
	}
	out := strings.TrimSpace(reply.Text)
	if out == "" {
		return "None"
	}
	return out
}
