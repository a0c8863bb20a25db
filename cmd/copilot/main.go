package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"warecopilot/gateway"
)

func main() {
	serverURL := getenv("COPILOT_API", "http://localhost:8080")

	m := initChatModel(gateway.New(serverURL))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "copilot: %v\n", err)
		os.Exit(1)
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
