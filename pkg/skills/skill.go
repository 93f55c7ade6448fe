// Package skills discovers reusable workflow definitions from a user-level
// and a project-level directory and merges them into an ordered catalog.
// Skills are packaged as directories containing a SKILL.md file with YAML
// frontmatter describing the skill's purpose and instructions. The package
// only reads name and description; the body is opaque payload owned by
// whatever consumes the selected skill.
package skills

// Source identifies the origin tier of a skill. Project-sourced records win
// value conflicts against user-sourced ones.
type Source string

const (
	// SourceUser marks skills discovered under the user-level root
	SourceUser Source = "user"
	// SourceProject marks skills discovered under the project-level root
	SourceProject Source = "project"
)

// shortDescriptionLimit caps ShortDescription, ellipsis included.
const shortDescriptionLimit = 40

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name             string // Unique name from frontmatter
	Description      string // Full description from frontmatter
	ShortDescription string // Description truncated for card display
	Content          string // Body of SKILL.md without frontmatter
	Source           Source // Origin tier (user or project)
	Directory        string // Full path to the skill directory
}

// Metadata represents the YAML frontmatter in SKILL.md files. Additional
// frontmatter keys are ignored for forward compatibility.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// truncateDescription shortens a description for card display. Descriptions
// within the limit are returned unchanged; longer ones are cut so that text
// plus ellipsis is exactly the limit.
func truncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= shortDescriptionLimit {
		return description
	}
	return string(runes[:shortDescriptionLimit-3]) + "..."
}
