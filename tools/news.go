// News tool backed by NewsAPI. Topic-less invocations fetch top
// headlines; a topic switches to a relevancy-sorted search.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// NewsTool fetches headlines or topic searches.
type NewsTool struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewNewsTool creates a news tool.
func NewNewsTool(apiKey string) *NewsTool {
	return &NewsTool{
		apiKey:     apiKey,
		baseURL:    newsAPIBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint (primarily for tests).
func (t *NewsTool) WithBaseURL(u string) *NewsTool {
	t.baseURL = u
	return t
}

// Kind returns KindNews.
func (t *NewsTool) Kind() Kind {
	return KindNews
}

type newsAPIResponse struct {
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
	Message string `json:"message"`
}

// Execute fetches up to five headlines. An empty or "None" topic means
// top headlines instead of a search query.
func (t *NewsTool) Execute(ctx context.Context, inv Invocation) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("News API key is missing")
	}

	params := url.Values{}
	params.Set("apiKey", t.apiKey)
	params.Set("language", "en")
	params.Set("pageSize", "5")

	topic := inv.Topic
	endpoint := t.baseURL + "/top-headlines"
	if topic != "" && !strings.EqualFold(topic, "none") {
		endpoint = t.baseURL + "/everything"
		params.Set("q", topic)
		params.Set("sortBy", "relevancy")
	} else {
		topic = ""
		params.Set("country", "us")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("news response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching news: %s", data.Message)
	}
	if len(data.Articles) == 0 {
		if topic == "" {
			return "No news found for top headlines.", nil
		}
		return fmt.Sprintf("No news found for %s.", topic), nil
	}

	lines := make([]string, 0, len(data.Articles))
	for i, article := range data.Articles {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, article.Title, article.Source.Name))
	}
	return strings.Join(lines, "\n"), nil
}

// Verify NewsTool implements Tool.
var _ Tool = (*NewsTool)(nil)
