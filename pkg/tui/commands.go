package tui

import (
	"fmt"
	"strings"
)

// Command represents a chat command
type Command string

const (
	CommandHelp     Command = "help"
	CommandClear    Command = "clear"
	CommandSkills   Command = "skills"
	CommandUseSkill Command = "use-skill"
)

// SkillsTrigger is the exact input that opens the skill selector instead of
// being submitted.
const SkillsTrigger = "/skills"

// UseSkillCommand prefixes the command written back into the input when a
// skill is selected.
const UseSkillCommand = "/use-skill"

// GetAvailableCommands returns the list of available slash commands
func GetAvailableCommands() []string {
	return []string{
		"/skills",
		"/use-skill",
		"/help",
		"/clear",
	}
}

// ParseCommand parses a user input and returns the command name, arguments, and whether it's a valid command
func ParseCommand(input string) (command string, args string, isCommand bool) {
	input = strings.TrimSpace(input)

	if !strings.HasPrefix(input, "/") {
		return "", "", false
	}

	parts := strings.SplitN(input, " ", 2)
	commandName := strings.TrimPrefix(parts[0], "/")

	var arguments string
	if len(parts) > 1 {
		arguments = parts[1]
	}

	validCommands := map[string]bool{
		string(CommandHelp):     true,
		string(CommandClear):    true,
		string(CommandSkills):   true,
		string(CommandUseSkill): true,
	}

	if !validCommands[commandName] {
		return "", "", false
	}

	return commandName, arguments, true
}

// IsSkillsTrigger reports whether the input is exactly the selector trigger
func IsSkillsTrigger(input string) bool {
	return strings.TrimSpace(input) == SkillsTrigger
}

// FormatUseSkill renders the command written into the host input on
// selection. Names containing whitespace are quoted.
func FormatUseSkill(name string) string {
	if strings.ContainsAny(name, " \t") {
		return fmt.Sprintf("%s %q", UseSkillCommand, name)
	}
	return UseSkillCommand + " " + name
}

// GetHelpText returns the help text for keyboard shortcuts and commands
func GetHelpText() string {
	return `Keyboard Shortcuts:
Ctrl+C (twice): Quit
Enter: Send message
Ctrl+H: Show this help
Ctrl+L: Clear screen
PageUp/PageDown: Scroll history

Commands:
/skills: Browse and select an available skill
/use-skill [name]: Ask for a skill by name
/help: Show this help message
/clear: Clear the screen

Skill selector:
↑↓←→: Navigate | Enter: Select | Esc: Cancel`
}

// IsCommandComplete checks if the current input is a complete command
// (i.e., starts with a known command prefix)
func IsCommandComplete(input string, commands []string) bool {
	for _, cmd := range commands {
		if strings.HasPrefix(input, cmd) {
			return true
		}
	}
	return false
}
