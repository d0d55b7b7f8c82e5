package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWeatherToolReportsConditions(t *testing.T) {
	var gotCity string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]any{
			"weather": []map[string]any{{"description": "light rain"}},
			"main":    map[string]any{"temp": 18.5, "humidity": 72},
		})
	}))
	defer server.Close()

	tool := NewWeatherTool("test-key", "Kolkata").WithBaseURL(server.URL)
	out, err := tool.Execute(context.Background(), Invocation{City: "Paris"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCity != "Paris" {
		t.Errorf("expected query for Paris, got %q", gotCity)
	}
	if !strings.Contains(out, "Paris") || !strings.Contains(out, "light rain") {
		t.Errorf("unexpected report: %q", out)
	}
}

func TestWeatherToolDefaultCity(t *testing.T) {
	var gotCity string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]any{
			"weather": []map[string]any{{"description": "haze"}},
			"main":    map[string]any{"temp": 30.0, "humidity": 60},
		})
	}))
	defer server.Close()

	tool := NewWeatherTool("test-key", "Kolkata").WithBaseURL(server.URL)
	for _, city := range []string{"", "None", "none"} {
		if _, err := tool.Execute(context.Background(), Invocation{City: city}); err != nil {
			t.Fatalf("city %q: unexpected error: %v", city, err)
		}
		if gotCity != "Kolkata" {
			t.Errorf("city %q: expected default city Kolkata, got %q", city, gotCity)
		}
	}
}

func TestWeatherToolMissingKey(t *testing.T) {
	tool := NewWeatherTool("", "Kolkata")
	if _, err := tool.Execute(context.Background(), Invocation{City: "Paris"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewsToolTopHeadlinesWhenNoTopic(t *testing.T) {
	var gotPath string
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]any{
			"articles": []map[string]any{
				{"title": "Big story", "source": map[string]any{"name": "Wire"}},
				{"title": "Other story", "source": map[string]any{"name": "Post"}},
			},
		})
	}))
	defer server.Close()

	tool := NewNewsTool("test-key").WithBaseURL(server.URL)
	out, err := tool.Execute(context.Background(), Invocation{Topic: "None"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/top-headlines" {
		t.Errorf("topic 'None' must fetch top headlines, hit %q", gotPath)
	}
	if gotQuery != "" {
		t.Errorf("top headlines must not carry a search query, got %q", gotQuery)
	}
	if !strings.Contains(out, "1. Big story (Wire)") {
		t.Errorf("unexpected headline list: %q", out)
	}
}

func TestNewsToolSearchWhenTopicGiven(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]any{
			"articles": []map[string]any{
				{"title": "AI advances", "source": map[string]any{"name": "Lab"}},
			},
		})
	}))
	defer server.Close()

	tool := NewNewsTool("test-key").WithBaseURL(server.URL)
	if _, err := tool.Execute(context.Background(), Invocation{Topic: "Artificial Intelligence"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/everything" {
		t.Errorf("topic search must hit /everything, hit %q", gotPath)
	}
	if gotQuery != "Artificial Intelligence" {
		t.Errorf("expected topic as query, got %q", gotQuery)
	}
}

func TestSystemInfoSubsetSelection(t *testing.T) {
	tool := NewSystemInfoTool()

	out, err := tool.Execute(context.Background(), Invocation{Utterance: "how much ram do I have"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Memory Info") {
		t.Errorf("expected memory section, got %q", out)
	}
	if strings.Contains(out, "Disk Info") || strings.Contains(out, "GPU Info") {
		t.Errorf("memory query must not include other sections, got %q", out)
	}

	out, err = tool.Execute(context.Background(), Invocation{Utterance: "tell me my system specs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, section := range []string{"System/OS Info", "Memory Info", "Disk Info", "GPU Info"} {
		if !strings.Contains(out, section) {
			t.Errorf("specs query should report everything, missing %q in %q", section, out)
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewSystemInfoTool()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(NewSystemInfoTool()); err == nil {
		t.Error("expected duplicate registration error")
	}
	if _, ok := r.Get(KindSystemInfo); !ok {
		t.Error("registered tool not found")
	}
	if _, ok := r.Get(KindWeather); ok {
		t.Error("unregistered kind should not resolve")
	}
}
