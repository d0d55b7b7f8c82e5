// Package main provides the ava CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/saraans/ava/config"
)

var (
	// Global flags
	provider string
	model    string
	verbose  bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "ava",
		Short: "A tool-using conversational assistant",
		Long: `Ava is a conversational assistant with durable memory and pre-generation tools.

Each turn is routed through a keyword router: weather, news and system
queries run their tool first, and the tool output is injected into the
prompt as system data before the model answers.`,
	}

	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "openrouter", "LLM provider (openrouter, cohere, gemini, anthropic, ollama)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "M", "", "Model override for the chosen provider")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show token usage after each reply")

	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(clearCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation on stdin/stdout.

The conversation resumes from the durable store; say "exit" or "quit"
to leave. History carries across sessions until cleared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runChat(ctx, provider, model, verbose)
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(context.Background(), provider, model, verbose, args[0])
		},
	}
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.New(provider)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(settings)
			if err != nil {
				return err
			}
			for _, kind := range registry.Kinds() {
				fmt.Println(kind.String())
			}
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Wipe the stored conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.New(provider)
			if err != nil {
				return err
			}
			conv, closeStore, err := openStore(settings.Store)
			if err != nil {
				return err
			}
			defer closeStore()
			if err := conv.Clear(); err != nil {
				return fmt.Errorf("clear conversation: %w", err)
			}
			fmt.Println("Conversation cleared.")
			return nil
		},
	}
}
