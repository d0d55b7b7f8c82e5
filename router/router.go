// Package router decides which single tool, if any, should run before
// generation for a given utterance.
//
// The evaluation order is a fixed priority chain and first match wins:
// weather keywords, then news, then the optional LLM vision-intent
// classifier, then the system/hardware vocabulary. This is a deliberate
// simplification over true NLU; ties resolve purely by list order.
package router

import (
	"context"
	"strings"

	"github.com/saraans/ava/llm"
	"github.com/saraans/ava/tools"
)

// Weather keywords include homophones and phonetic misrecognitions of
// "weather" the speech layer produces.
var weatherWords = []string{"weather", "whether", "vedar", "vader"}

var systemWords = []string{
	"system", "spec", "specs", "processor", "cpu",
	"memory", "ram", "disk", "storage", "os", "platform",
	"gpu", "graphics", "card",
}

// Disambiguators that let the bare word "space" count as disk intent.
var spaceDisambiguators = []string{"free", "left", "disk", "storage"}

// Router classifies utterances into tool selections. It is state-free;
// the optional classifier is resolved once at construction, never
// probed per call.
type Router struct {
	classifier llm.VisionIntentClassifier
}

// New creates a router. classifier may be nil, which only disables
// screen/camera routing.
func New(classifier llm.VisionIntentClassifier) *Router {
	return &Router{classifier: classifier}
}

// Route returns the tool to run for the utterance, or KindNone when the
// utterance should go straight to generation. At most one tool fires.
func (r *Router) Route(ctx context.Context, utterance string) tools.Kind {
	seen := words(utterance)

	for _, w := range weatherWords {
		if seen[w] {
			return tools.KindWeather
		}
	}

	if seen["news"] {
		return tools.KindNews
	}

	if r.classifier != nil {
		switch r.classifier.ClassifyVisionIntent(ctx, utterance) {
		case llm.VisionScreen:
			return tools.KindScreen
		case llm.VisionCamera:
			return tools.KindCamera
		}
	}

	for _, w := range systemWords {
		if seen[w] {
			return tools.KindSystemInfo
		}
	}
	// "space" alone is too ambiguous to imply disk intent; it needs a
	// disambiguating word alongside it.
	if seen["space"] {
		for _, w := range spaceDisambiguators {
			if seen[w] {
				return tools.KindSystemInfo
			}
		}
	}

	return tools.KindNone
}

// words lowercases the utterance and splits it into a set of bare
// words, trimming surrounding punctuation so "cpu?" matches "cpu".
func words(text string) map[string]bool {
	seen := make(map[string]bool)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		if word != "" {
			seen[word] = true
		}
	}
	return seen
}
