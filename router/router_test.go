package router

import (
	"context"
	"testing"

	"github.com/saraans/ava/llm"
	"github.com/saraans/ava/tools"
)

type fixedClassifier struct {
	intent llm.VisionIntent
	calls  int
}

func (c *fixedClassifier) ClassifyVisionIntent(_ context.Context, _ string) llm.VisionIntent {
	c.calls++
	return c.intent
}

func TestRouteKeywords(t *testing.T) {
	cases := []struct {
		utterance string
		want      tools.Kind
	}{
		{"what's the weather in Paris", tools.KindWeather},
		{"what is the vedar like today", tools.KindWeather},
		{"tell me the news", tools.KindNews},
		{"how much CPU am I using?", tools.KindSystemInfo},
		{"what are my system specs", tools.KindSystemInfo},
		{"how is my RAM doing", tools.KindSystemInfo},
		{"sing me a song", tools.KindNone},
		{"the most boring question", tools.KindNone},
	}

	r := New(nil)
	for _, tc := range cases {
		if got := r.Route(context.Background(), tc.utterance); got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.utterance, tc.want, got)
		}
	}
}

func TestRoutePriorityWeatherBeatsSystem(t *testing.T) {
	r := New(nil)
	if got := r.Route(context.Background(), "does the weather affect my cpu temperature"); got != tools.KindWeather {
		t.Errorf("weather keyword must win over system keyword, got %v", got)
	}
}

func TestRouteSpaceCarveOut(t *testing.T) {
	r := New(nil)

	if got := r.Route(context.Background(), "how much space"); got != tools.KindNone {
		t.Errorf("bare 'space' must not imply disk intent, got %v", got)
	}
	if got := r.Route(context.Background(), "how much disk space is left"); got != tools.KindSystemInfo {
		t.Errorf("disambiguated space must route to system info, got %v", got)
	}
	if got := r.Route(context.Background(), "how much space is left"); got != tools.KindSystemInfo {
		t.Errorf("'left' disambiguates space, got %v", got)
	}
}

func TestRouteClassifier(t *testing.T) {
	screen := &fixedClassifier{intent: llm.VisionScreen}
	if got := New(screen).Route(context.Background(), "what am I looking at right now"); got != tools.KindScreen {
		t.Errorf("expected screen routing, got %v", got)
	}

	camera := &fixedClassifier{intent: llm.VisionCamera}
	if got := New(camera).Route(context.Background(), "can you see me"); got != tools.KindCamera {
		t.Errorf("expected camera routing, got %v", got)
	}

	none := &fixedClassifier{intent: llm.VisionNone}
	if got := New(none).Route(context.Background(), "tell me a joke"); got != tools.KindNone {
		t.Errorf("expected no tool, got %v", got)
	}
}

func TestRouteKeywordsBeatClassifier(t *testing.T) {
	c := &fixedClassifier{intent: llm.VisionScreen}
	r := New(c)
	if got := r.Route(context.Background(), "show me the weather"); got != tools.KindWeather {
		t.Errorf("weather keyword must preempt the classifier, got %v", got)
	}
	if c.calls != 0 {
		t.Errorf("classifier must not be consulted when a keyword already matched, got %d calls", c.calls)
	}
}
