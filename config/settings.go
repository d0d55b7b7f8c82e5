// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Provider-specific credential and model lookup
//
// Credential pools are comma-separated lists; single-key vendors read
// a plain variable. An .env file, if present, is loaded by the command
// layer before New runs.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Settings holds all application configuration.
type Settings struct {
	LLM   LLMConfig
	Tools ToolsConfig
	Store StoreConfig
	// OwnerName is the person the assistant addresses in its persona.
	OwnerName string
}

// LLMConfig holds LLM provider configuration.
type LLMConfig struct {
	Provider    string
	Model       string
	Keys        []string
	MaxTokens   uint32
	Temperature float32
}

// ToolsConfig holds the external tool credentials and defaults.
type ToolsConfig struct {
	WeatherAPIKey string
	NewsAPIKey    string
	// DefaultCity is used when a weather query names no city.
	DefaultCity string
}

// StoreConfig selects and locates the conversation store.
type StoreConfig struct {
	// Backend is "sqlite" or "file".
	Backend string
	Path    string
}

// providerInfo holds configuration for a specific LLM provider.
type providerInfo struct {
	modelEnv     string
	defaultModel string
	// keysEnv is a comma-separated credential pool; empty means the
	// provider needs no credentials.
	keysEnv string
}

// Supported providers and their configuration.
var providers = map[string]providerInfo{
	"openrouter": {"OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct", "OPENROUTER_API_KEYS"},
	"cohere":     {"COHERE_MODEL", "command-a-03-2025", "COHERE_API_KEYS"},
	"gemini":     {"GEMINI_MODEL", "gemini-2.0-flash", "GEMINI_API_KEY"},
	"anthropic":  {"ANTHROPIC_MODEL", "claude-haiku-4-20250514", "ANTHROPIC_API_KEY"},
	"ollama":     {"OLLAMA_MODEL", "llama3", ""},
}

// Provider aliases map to canonical names.
var providerAliases = map[string]string{
	"claude": "anthropic",
	"google": "gemini",
	"local":  "ollama",
}

// New creates settings for the specified provider, loading values from
// environment variables. Returns an error if the provider is unknown or
// environment variables contain invalid values. Missing credentials are
// not an error here; providers degrade to a fixed reply at call time.
func New(provider string) (Settings, error) {
	provider = normalizeProvider(provider)

	info, err := getProviderInfo(provider)
	if err != nil {
		return Settings{}, err
	}

	maxTokens, err := getEnvUint32("LLM_MAX_TOKENS", 1024)
	if err != nil {
		return Settings{}, err
	}

	temperature, err := getEnvFloat32("LLM_TEMPERATURE", 0.7)
	if err != nil {
		return Settings{}, err
	}

	model := os.Getenv(info.modelEnv)
	if model == "" {
		model = info.defaultModel
	}

	return Settings{
		LLM: LLMConfig{
			Provider:    provider,
			Model:       model,
			Keys:        KeysFor(provider),
			MaxTokens:   maxTokens,
			Temperature: temperature,
		},
		Tools: ToolsConfig{
			WeatherAPIKey: os.Getenv("OPEN_WEATHER_API_KEY"),
			NewsAPIKey:    os.Getenv("NEWS_API_KEY"),
			DefaultCity:   getEnvString("DEFAULT_CITY", "Kolkata"),
		},
		Store: loadStoreConfig(),
		OwnerName: getEnvString("OWNER_NAME", "Saraans"),
	}, nil
}

// MustNew creates settings for the specified provider.
// Panics if the provider is unknown or environment variables are invalid.
// Use this only when configuration errors should be fatal.
func MustNew(provider string) Settings {
	settings, err := New(provider)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return settings
}

// normalizeProvider converts provider aliases to canonical names.
func normalizeProvider(provider string) string {
	provider = strings.ToLower(provider)
	if canonical, ok := providerAliases[provider]; ok {
		return canonical
	}
	return provider
}

// getProviderInfo returns configuration for a provider.
func getProviderInfo(provider string) (providerInfo, error) {
	info, ok := providers[provider]
	if !ok {
		return providerInfo{}, fmt.Errorf("unknown provider: %q", provider)
	}
	return info, nil
}

// KeysFor returns the credential pool for a provider. Entries are
// comma-separated; blanks are dropped. An unknown or credential-free
// provider yields nil.
func KeysFor(provider string) []string {
	info, err := getProviderInfo(normalizeProvider(provider))
	if err != nil || info.keysEnv == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(os.Getenv(info.keysEnv), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ModelFor returns the model for a provider, checking environment first.
func ModelFor(provider string) (string, error) {
	provider = normalizeProvider(provider)

	info, err := getProviderInfo(provider)
	if err != nil {
		return "", err
	}

	if val := os.Getenv(info.modelEnv); val != "" {
		return val, nil
	}
	return info.defaultModel, nil
}

// SupportedProviders returns the list of supported provider names.
func SupportedProviders() []string {
	result := make([]string, 0, len(providers))
	for name := range providers {
		result = append(result, name)
	}
	return result
}

// loadStoreConfig reads the store backend and path. The default path
// matches the backend's format; an explicit CONVERSATION_PATH is used
// verbatim, whatever its extension.
func loadStoreConfig() StoreConfig {
	backend := getEnvString("CONVERSATION_BACKEND", "sqlite")
	return StoreConfig{
		Backend: backend,
		Path:    getEnvString("CONVERSATION_PATH", defaultStorePath(backend)),
	}
}

func defaultStorePath(backend string) string {
	name := "conversation.db"
	if backend == "file" {
		name = "conversation.json"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return home + "/.ava/" + name
}

// Environment variable helpers with proper error handling

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvUint32(key string, defaultVal uint32) (uint32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return uint32(i), nil
}

func getEnvFloat32(key string, defaultVal float32) (float32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return float32(f), nil
}
