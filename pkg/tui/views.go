package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jingkaihe/skillet/pkg/skills"
)

// Tokyo Night palette shared by the selector views
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7aa2f7")). // Blue
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	userSourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")) // Cyan

	projectSourceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ece6a")) // Green

	cardNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7")). // Purple
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth - 4)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("#7aa2f7")).
				Bold(true)

	selectorBoxStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7aa2f7")).
				Padding(1, 2)
)

var spinChars = []string{".", "∘", "○", "◌", "◍", "◉", "◎", "●"}

// sourceLabel renders the origin tag of a card
func sourceLabel(source skills.Source) string {
	switch source {
	case skills.SourceUser:
		return userSourceStyle.Render("[User]")
	case skills.SourceProject:
		return projectSourceStyle.Render("[Project]")
	default:
		return dimStyle.Render(fmt.Sprintf("[%s]", source))
	}
}

// renderCard renders one skill card, highlighted when active
func renderCard(card Card, selected bool) string {
	body := cardNameStyle.Render(card.Name) + " " + sourceLabel(card.Source) + "\n" +
		dimStyle.Render(card.Description)

	if selected {
		return selectedCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

// renderGrid lays the cards out row by row in catalog order
func renderGrid(s *Selector) string {
	cards := s.Cards()
	cols := s.Cols()

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}

		rendered := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			rendered = append(rendered, renderCard(cards[i], i == s.ActiveIndex()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// selectorView renders the modal selector for the current state
func (m Model) selectorView() string {
	s := m.selector

	header := titleStyle.Render("Available Skills")

	var body string
	switch s.State() {
	case SelectorLoading:
		body = fmt.Sprintf("%s Loading skills...", spinChars[m.spinnerIndex%len(spinChars)])
	case SelectorEmpty:
		body = dimStyle.Render("No skills found.\n\n" +
			"Create your first skill: add a SKILL.md with name and\n" +
			"description frontmatter under " + m.loader.UserRoot() + "/<skill>/")
	default:
		body = renderGrid(s)
	}

	footer := dimStyle.Render("↑↓←→ Navigate | Enter Select | Esc Cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
	return selectorBoxStyle.Width(m.gridWidth()).Render(content)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.selector != nil {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.selectorView(),
			m.statusView(),
		)
	}

	inputBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(0, 2).
		Width(m.width - 2).
		Align(lipgloss.Left).
		Render(m.textarea.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(m.viewport.View()),
		inputBox,
		m.statusView(),
	)
}

// statusView renders the status bar
func (m Model) statusView() string {
	statusText := m.statusMessage
	if m.selector != nil && m.selector.State() == SelectorLoading {
		statusText = fmt.Sprintf("%s %s", spinChars[m.spinnerIndex%len(spinChars)], m.statusMessage)
	}

	hints := "Ctrl+C (twice): Quit │ Ctrl+H: Help"
	if m.selector == nil {
		hints += " │ /skills: Browse skills"
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Background(lipgloss.Color("236")).
		Padding(0, 1).
		Bold(true).
		Render(strings.Join([]string{statusText, hints}, " │ "))
}
