// Weather tool backed by the OpenWeather current-conditions API.
//
// Information Hiding:
// - API endpoint, auth and response shape
// - Default-city substitution for missing extractions

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

const openWeatherBaseURL = "http://api.openweathermap.org/data/2.5/weather"

// WeatherTool reports current weather for a city.
type WeatherTool struct {
	apiKey      string
	defaultCity string
	baseURL     string
	httpClient  *http.Client
}

// NewWeatherTool creates a weather tool. defaultCity is used when the
// extraction helper yields nothing usable.
func NewWeatherTool(apiKey, defaultCity string) *WeatherTool {
	return &WeatherTool{
		apiKey:      strings.TrimSpace(apiKey),
		defaultCity: defaultCity,
		baseURL:     openWeatherBaseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint (primarily for tests).
func (t *WeatherTool) WithBaseURL(u string) *WeatherTool {
	t.baseURL = u
	return t
}

// Kind returns KindWeather.
func (t *WeatherTool) Kind() Kind {
	return KindWeather
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Message string `json:"message"`
}

// Execute fetches current conditions for the invocation's city.
func (t *WeatherTool) Execute(ctx context.Context, inv Invocation) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenWeather API key is missing")
	}

	city := inv.City
	if city == "" || strings.EqualFold(city, "none") {
		city = t.defaultCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", t.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather fetch: %w", err)
	}
	defer resp.Body.Close()

	var data openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather for %s: %s", city, data.Message)
	}
	if len(data.Weather) == 0 {
		return "", fmt.Errorf("weather for %s: empty report", city)
	}

	return fmt.Sprintf("The weather in %s is %s, %.1f°C, %d%% humidity.",
		city, data.Weather[0].Description, data.Main.Temp, data.Main.Humidity), nil
}

// Verify WeatherTool implements Tool.
var _ Tool = (*WeatherTool)(nil)
