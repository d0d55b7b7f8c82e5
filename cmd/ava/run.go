// Assistant assembly and the console front end.
//
// Information Hiding:
// - Provider/tool/store construction hidden behind build helpers
// - Output formatting hidden in the speaker

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saraans/ava/assistant"
	"github.com/saraans/ava/config"
	"github.com/saraans/ava/llm"
	"github.com/saraans/ava/router"
	"github.com/saraans/ava/store"
	"github.com/saraans/ava/tools"
)

func runChat(ctx context.Context, providerName, modelOverride string, verbose bool) error {
	a, closeStore, err := buildAssistant(providerName, modelOverride)
	if err != nil {
		return err
	}
	defer closeStore()

	fmt.Println("Ava is listening. Say \"exit\" to leave.")

	in := &consoleListener{reader: bufio.NewReader(os.Stdin)}
	out := &consoleSpeaker{verbose: verbose}
	if err := assistant.Loop(ctx, a, in, out); err != nil && err != context.Canceled {
		return err
	}
	fmt.Println("Goodbye.")
	return nil
}

func runAsk(ctx context.Context, providerName, modelOverride string, verbose bool, question string) error {
	a, closeStore, err := buildAssistant(providerName, modelOverride)
	if err != nil {
		return err
	}
	defer closeStore()

	result := a.Turn(ctx, question)
	return (&consoleSpeaker{verbose: verbose}).Speak(ctx, result)
}

// buildAssistant wires the provider, router, tools and store from the
// environment. The returned func releases the store.
func buildAssistant(providerName, modelOverride string) (*assistant.Assistant, func(), error) {
	settings, err := config.New(providerName)
	if err != nil {
		return nil, nil, err
	}
	if modelOverride != "" {
		settings.LLM.Model = modelOverride
	}

	providerType, err := llm.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return nil, nil, err
	}
	provider, err := llm.New(providerType, llm.Options{
		Keys:        settings.LLM.Keys,
		Model:       settings.LLM.Model,
		MaxTokens:   settings.LLM.MaxTokens,
		Temperature: &settings.LLM.Temperature,
	})
	if err != nil {
		return nil, nil, err
	}

	registry, err := buildRegistry(settings)
	if err != nil {
		return nil, nil, err
	}

	conv, closeStore, err := openStore(settings.Store)
	if err != nil {
		return nil, nil, err
	}

	a := assistant.New(provider, router.New(visionClassifier(provider, registry)), registry, conv,
		assistant.BuildSystemPrompt(settings.OwnerName))
	return a, closeStore, nil
}

// visionClassifier resolves the provider's classifier capability only
// when a vision tool is registered to serve its labels. Classification
// costs a full generation call per non-keyword utterance, and a label
// nothing can handle would be paid for and then dropped.
func visionClassifier(provider llm.Provider, registry *tools.Registry) llm.VisionIntentClassifier {
	_, hasScreen := registry.Get(tools.KindScreen)
	_, hasCamera := registry.Get(tools.KindCamera)
	if !hasScreen && !hasCamera {
		return nil
	}
	classifier, _ := provider.(llm.VisionIntentClassifier)
	return classifier
}

// buildRegistry registers every tool the console can serve. Screen and
// camera need a capture device and are wired only where one exists.
func buildRegistry(settings config.Settings) (*tools.Registry, error) {
	registry := tools.NewRegistry()
	for _, tool := range []tools.Tool{
		tools.NewWeatherTool(settings.Tools.WeatherAPIKey, settings.Tools.DefaultCity),
		tools.NewNewsTool(settings.Tools.NewsAPIKey),
		tools.NewSystemInfoTool(),
	} {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// openStore opens the configured conversation backend.
func openStore(cfg config.StoreConfig) (store.Conversation, func(), error) {
	switch cfg.Backend {
	case "file":
		fs, err := store.OpenFile(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open conversation file: %w", err)
		}
		return fs, func() {}, nil
	case "sqlite":
		ss, err := store.OpenSqlite(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open conversation db: %w", err)
		}
		return ss, func() { ss.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown conversation backend: %q", cfg.Backend)
	}
}

// consoleListener reads one line per utterance.
type consoleListener struct {
	reader *bufio.Reader
}

func (l *consoleListener) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Print("You: ")
	line, err := l.reader.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(line) == "" {
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// consoleSpeaker prints the reply, with a usage subtitle when verbose.
type consoleSpeaker struct {
	verbose bool
}

func (s *consoleSpeaker) Speak(_ context.Context, result assistant.TurnResult) error {
	fmt.Printf("Ava: %s\n", result.Reply)
	if s.verbose && result.Usage != nil {
		fmt.Printf("  [%s | %d tokens used | %d remaining]\n",
			result.ShortModel(), result.Usage.TotalTokens, result.TokensRemaining)
	}
	return nil
}
