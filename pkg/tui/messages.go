package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Message represents a chat message
type Message struct {
	Content  string
	IsUser   bool
	IsSystem bool
}

// MessageFormatter handles formatting of messages for display
type MessageFormatter struct {
	width       int
	userStyle   lipgloss.Style
	systemStyle lipgloss.Style
}

// NewMessageFormatter creates a new message formatter (Tokyo Night)
func NewMessageFormatter(width int) *MessageFormatter {
	return &MessageFormatter{
		width:       width,
		userStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Bold(true), // Cyan
		systemStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true), // Green
	}
}

// SetWidth updates the width for message formatting
func (f *MessageFormatter) SetWidth(width int) {
	f.width = width
}

// FormatMessage formats a single message for display
func (f *MessageFormatter) FormatMessage(msg Message) string {
	if msg.IsSystem {
		// No prefix for system messages
		return msg.Content
	}

	userPrefix := f.userStyle.Render("You")
	messageText := lipgloss.NewStyle().
		PaddingLeft(1).
		Width(f.width - 15). // Ensure text wraps within viewport width
		Render(msg.Content)
	return userPrefix + " → " + messageText
}

// FormatMessages formats multiple messages for display
func (f *MessageFormatter) FormatMessages(messages []Message) string {
	var content string

	for i, msg := range messages {
		if i > 0 {
			content += "\n\n"
		}
		content += f.FormatMessage(msg)
	}

	return content
}
