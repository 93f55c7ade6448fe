// Package tui implements the terminal interface: a chat-style input surface
// and the modal skill selector it opens on the /skills trigger.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jingkaihe/skillet/pkg/logger"
	"github.com/jingkaihe/skillet/pkg/skills"
)

// Model represents the main TUI model
type Model struct {
	ctx    context.Context
	loader *skills.Loader

	messages  []Message
	formatter *MessageFormatter
	viewport  viewport.Model
	textarea  textarea.Model

	ready         bool
	width         int
	height        int
	statusMessage string

	// Skill selector; nil while no selector interaction is live. Exactly
	// one selector instance exists at a time.
	selector *Selector

	// loadGeneration versions catalog loads. A completion carrying an older
	// generation is discarded, never merged.
	loadGeneration int
	spinnerIndex   int

	ctrlCPressCount    int
	lastCtrlCPressTime time.Time
}

// NewModel creates a new TUI model bound to a skill loader
func NewModel(ctx context.Context, loader *skills.Loader) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message, or /skills to browse skills..."
	ta.Focus()
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false) // Enter submits

	ta.Prompt = "❯ "

	vp := viewport.New(0, 0)
	vp.KeyMap.PageDown.SetEnabled(true)
	vp.KeyMap.PageUp.SetEnabled(true)

	return Model{
		ctx:           ctx,
		loader:        loader,
		textarea:      ta,
		viewport:      vp,
		formatter:     NewMessageFormatter(80),
		statusMessage: "Ready",
	}
}

// AddMessage adds a new message to the chat history
func (m *Model) AddMessage(content string, isUser bool) {
	m.messages = append(m.messages, Message{
		Content: content,
		IsUser:  isUser,
	})
	m.updateViewportContent()
	m.viewport.GotoBottom()
}

// AddSystemMessage adds a system message to the chat history
func (m *Model) AddSystemMessage(content string) {
	m.messages = append(m.messages, Message{
		Content:  content,
		IsSystem: true,
	})
	m.updateViewportContent()
	m.viewport.GotoBottom()
}

func (m *Model) updateViewportContent() {
	m.viewport.SetContent(m.formatter.FormatMessages(m.messages))
}

// SelectorOpen reports whether a selector interaction is live
func (m Model) SelectorOpen() bool {
	return m.selector != nil
}

// InputValue returns the current host input content
func (m Model) InputValue() string {
	return m.textarea.Value()
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Custom message types
type catalogLoadedMsg struct {
	generation int
	catalog    *skills.Catalog
}

type skillInfoMsg struct {
	name  string
	skill *skills.Skill
}

type spinnerTickMsg struct{}
type resetCtrlCMsg struct{}

// resetCtrlCCmd creates a command that resets the Ctrl+C counter after a timeout
func resetCtrlCCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return resetCtrlCMsg{}
	})
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// loadCatalogCmd runs one discovery pass off the input path. The generation
// travels with the result so stale completions can be recognized.
func (m *Model) loadCatalogCmd(generation int) tea.Cmd {
	ctx := m.ctx
	loader := m.loader
	return func() tea.Msg {
		catalog, err := loader.Load(ctx)
		if err != nil {
			logger.G(ctx).WithError(err).Warn("Skill discovery failed")
			catalog = skills.NewCatalog()
		}
		return catalogLoadedMsg{generation: generation, catalog: catalog}
	}
}

// lookupSkillCmd resolves a single skill by name for /use-skill feedback
func (m *Model) lookupSkillCmd(name string) tea.Cmd {
	ctx := m.ctx
	loader := m.loader
	return func() tea.Msg {
		catalog, err := loader.Load(ctx)
		if err != nil {
			return skillInfoMsg{name: name}
		}
		skill, _ := catalog.Get(name)
		return skillInfoMsg{name: name, skill: skill}
	}
}

// openSelector starts a selector interaction over a fresh load. Calling it
// while a selector is already open rebinds it to a new load, superseding any
// in-flight one.
func (m *Model) openSelector() tea.Cmd {
	m.loadGeneration++
	m.selector = NewSelector(m.gridWidth())
	m.statusMessage = "Loading skills..."
	m.textarea.Blur()
	return tea.Batch(m.loadCatalogCmd(m.loadGeneration), spinnerTickCmd())
}

// closeSelector tears the live selector down. Bumping the generation marks
// any in-flight load stale so its completion is discarded on arrival.
func (m *Model) closeSelector() {
	m.loadGeneration++
	m.selector = nil
	m.statusMessage = "Ready"
	m.textarea.Focus()
}

func (m *Model) gridWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width - 8
}

// Update handles the message updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case resetCtrlCMsg:
		if m.statusMessage == "Press Ctrl+C again to quit" {
			m.statusMessage = "Ready"
			m.ctrlCPressCount = 0
		}
		return m, nil

	case spinnerTickMsg:
		if m.selector != nil && m.selector.State() == SelectorLoading {
			m.spinnerIndex = (m.spinnerIndex + 1) % 8
			return m, spinnerTickCmd()
		}
		return m, nil

	case catalogLoadedMsg:
		if m.selector == nil || msg.generation != m.loadGeneration {
			logger.G(m.ctx).WithField("generation", msg.generation).Debug("Discarding stale catalog load")
			return m, nil
		}
		m.selector.SetCards(cardsFromCatalog(msg.catalog))
		if m.selector.State() == SelectorEmpty {
			m.statusMessage = "No skills found"
		} else {
			m.statusMessage = fmt.Sprintf("%d skills available", msg.catalog.Len())
		}
		return m, nil

	case skillInfoMsg:
		if msg.skill != nil {
			m.AddSystemMessage(fmt.Sprintf("Skill %s (%s)\n%s", msg.skill.Name, msg.skill.Source, msg.skill.Description))
		} else {
			m.AddSystemMessage(fmt.Sprintf("Skill %q not found. Use /skills to browse available skills.", msg.name))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			now := time.Now()
			if m.ctrlCPressCount > 0 && now.Sub(m.lastCtrlCPressTime) < 2*time.Second {
				return m, tea.Quit
			}
			m.ctrlCPressCount = 1
			m.lastCtrlCPressTime = now
			m.statusMessage = "Press Ctrl+C again to quit"
			return m, resetCtrlCCmd()
		}

		// Modal routing: the live selector consumes keys before the textarea
		if m.selector != nil {
			return m.updateSelector(msg)
		}

		switch msg.Type {
		case tea.KeyCtrlH:
			m.AddSystemMessage(GetHelpText())
		case tea.KeyCtrlL:
			m.messages = []Message{}
			m.updateViewportContent()
			m.AddSystemMessage("Screen cleared")
		case tea.KeyPgUp:
			m.viewport.PageUp()
		case tea.KeyPgDown:
			m.viewport.PageDown()
		case tea.KeyEnter:
			return m.submitInput()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		footerHeight := 5 // textarea height + status bar + padding
		verticalMargins := headerHeight + footerHeight

		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - verticalMargins
		m.textarea.SetWidth(msg.Width - 2)
		m.formatter.SetWidth(msg.Width)

		if m.selector != nil {
			m.selector.Reflow(m.gridWidth())
		}

		if !m.ready {
			m.ready = true
		}
		m.updateViewportContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// updateSelector routes one key press into the live selector
func (m Model) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.selector.Cancel()
		m.closeSelector()
	case tea.KeyUp:
		m.selector.Navigate(MoveUp)
	case tea.KeyDown:
		m.selector.Navigate(MoveDown)
	case tea.KeyLeft:
		m.selector.Navigate(MoveLeft)
	case tea.KeyRight:
		m.selector.Navigate(MoveRight)
	case tea.KeyEnter:
		outcome, ok := m.selector.Confirm()
		if !ok {
			// Loading or empty: confirm is a no-op
			return m, nil
		}
		m.closeSelector()
		m.textarea.SetValue(FormatUseSkill(outcome.Name))
		m.textarea.CursorEnd()
		m.statusMessage = fmt.Sprintf("Selected skill: %s", outcome.Name)
	}
	return m, nil
}

// submitInput handles Enter on the host input
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	content := m.textarea.Value()
	if content == "" {
		return m, nil
	}

	if IsSkillsTrigger(content) {
		// Suppress normal submission and open the selector instead
		m.AddMessage(content, true)
		m.textarea.Reset()
		return m, m.openSelector()
	}

	if command, args, isCommand := ParseCommand(content); isCommand {
		switch Command(command) {
		case CommandHelp:
			m.AddMessage(content, true)
			m.textarea.Reset()
			m.AddSystemMessage(GetHelpText())
			return m, nil
		case CommandClear:
			m.AddMessage(content, true)
			m.textarea.Reset()
			m.messages = []Message{}
			m.updateViewportContent()
			m.AddSystemMessage("Screen cleared")
			return m, nil
		case CommandUseSkill:
			m.AddMessage(content, true)
			m.textarea.Reset()
			if args == "" {
				m.AddSystemMessage("Usage: /use-skill [name]")
				return m, nil
			}
			return m, m.lookupSkillCmd(unquoteSkillName(args))
		}
	}

	m.AddMessage(content, true)
	m.textarea.Reset()
	return m, nil
}

// unquoteSkillName strips the quoting FormatUseSkill applies to names
// containing whitespace.
func unquoteSkillName(args string) string {
	if len(args) >= 2 && args[0] == '"' && args[len(args)-1] == '"' {
		return args[1 : len(args)-1]
	}
	return args
}
