package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillet/pkg/skills"
	"github.com/jingkaihe/skillet/pkg/version"
)

// StartChat starts the TUI bound to the given skill loader
func StartChat(ctx context.Context, loader *skills.Loader) error {
	// Always use the full terminal screen
	teaOptions := []tea.ProgramOption{tea.WithAltScreen()}

	model := NewModel(ctx, loader)

	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#7aa2f7", Dark: "#7aa2f7"}). // Blue
		Render(fmt.Sprintf("\nSkillet (%s)\n", version.Version))

	welcomeMsg := banner + "\nType /skills to browse available skills."
	if !isTTY() {
		welcomeMsg += "\nLimited terminal capabilities detected. Some features may not work properly."
	}

	model.AddSystemMessage(welcomeMsg)
	model.AddSystemMessage("Press Ctrl+H for help with keyboard shortcuts.")

	p := tea.NewProgram(model, teaOptions...)

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "error running program")
	}

	return nil
}

// isTTY checks if the terminal supports advanced features
func isTTY() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// StartChatCmd is a wrapper that can be called from a command line
func StartChatCmd(ctx context.Context, loader *skills.Loader) {
	if err := StartChat(ctx, loader); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
