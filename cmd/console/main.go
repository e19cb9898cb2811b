package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	apiURL  string
	apiKey  string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "poke-console",
	Short: "Terminal client for the PokeArena API",
	Long: `poke-console generates creature collections, matches a personality to one
of them, and narrates battles between two creature profiles, all through a
running PokeArena API.`,
	RunE: runConsole,
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api-url", getEnv("API_BASE_URL", "http://localhost:8080"), "PokeArena API base URL")
	rootCmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("GROQ_API_KEY"), "Groq API key sent with each request (the server key is used when empty)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "Request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runConsole(cmd *cobra.Command, _ []string) error {
	api := NewAPIClient(apiURL, apiKey, &http.Client{Timeout: timeout})

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if err := api.Health(ctx); err != nil {
		return fmt.Errorf("could not connect to API at %s, ensure it is running (try: docker-compose up -d): %w", apiURL, err)
	}

	sess, err := api.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	p := tea.NewProgram(NewConsoleUI(api, sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
