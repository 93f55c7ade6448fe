package skills

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, dir, name, description string) string {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	content := `---
name: ` + name + `
description: ` + description + `
---

# ` + name + `

Instructions for ` + name + `.
`
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644))
	return skillDir
}

func TestNewLoader(t *testing.T) {
	t.Run("with default roots", func(t *testing.T) {
		loader, err := NewLoader()
		require.NoError(t, err)
		assert.NotEmpty(t, loader.UserRoot())
		assert.NotEmpty(t, loader.ProjectRoot())
	})

	t.Run("with explicit roots", func(t *testing.T) {
		loader, err := NewLoader(WithRoots("/tmp/user-skills", "/tmp/project-skills"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/user-skills", loader.UserRoot())
		assert.Equal(t, "/tmp/project-skills", loader.ProjectRoot())
	})

	t.Run("no roots is a configuration error", func(t *testing.T) {
		loader, err := NewLoader(WithRoots("", ""))
		assert.Error(t, err)
		assert.Nil(t, loader)
	})
}

func TestLoad(t *testing.T) {
	userRoot := t.TempDir()
	projectRoot := t.TempDir()

	writeSkill(t, userRoot, "test-skill", "test-skill", "A test skill for unit testing")
	userDir := writeSkill(t, userRoot, "another-skill", "another-skill", "Another test skill")

	loader, err := NewLoader(WithRoots(userRoot, projectRoot))
	require.NoError(t, err)

	catalog, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	// Directory-name order: "another-skill" sorts before "test-skill"
	assert.Equal(t, []string{"another-skill", "test-skill"}, catalog.Names())

	skill, ok := catalog.Get("another-skill")
	require.True(t, ok)
	assert.Equal(t, "Another test skill", skill.Description)
	assert.Equal(t, "Another test skill", skill.ShortDescription)
	assert.Equal(t, SourceUser, skill.Source)
	assert.Equal(t, userDir, skill.Directory)
	assert.Contains(t, skill.Content, "# another-skill")
	assert.NotContains(t, skill.Content, "description:")
}

func TestLoadProjectOverridesUserInPlace(t *testing.T) {
	userRoot := t.TempDir()
	projectRoot := t.TempDir()

	writeSkill(t, userRoot, "a", "a", "user skill a")
	writeSkill(t, userRoot, "b", "b", "user skill b")
	writeSkill(t, projectRoot, "b", "b", "project skill b")
	writeSkill(t, projectRoot, "c", "c", "project skill c")

	loader, err := NewLoader(WithRoots(userRoot, projectRoot))
	require.NoError(t, err)

	catalog, err := loader.Load(context.Background())
	require.NoError(t, err)

	// b keeps its user-insertion position but carries the project record
	assert.Equal(t, []string{"a", "b", "c"}, catalog.Names())

	b, ok := catalog.Get("b")
	require.True(t, ok)
	assert.Equal(t, "project skill b", b.Description)
	assert.Equal(t, SourceProject, b.Source)

	a, ok := catalog.Get("a")
	require.True(t, ok)
	assert.Equal(t, SourceUser, a.Source)

	c, ok := catalog.Get("c")
	require.True(t, ok)
	assert.Equal(t, SourceProject, c.Source)
}

func TestLoadIsIdempotent(t *testing.T) {
	userRoot := t.TempDir()
	writeSkill(t, userRoot, "stable", "stable", "Reloaded every open")

	loader, err := NewLoader(WithRoots(userRoot, filepath.Join(userRoot, "no-project")))
	require.NoError(t, err)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	second, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
}

func TestLoadSkipsInvalidEntries(t *testing.T) {
	userRoot := t.TempDir()

	writeSkill(t, userRoot, "valid", "valid", "A valid skill")

	t.Run("missing description", func(t *testing.T) {
		noDescDir := filepath.Join(userRoot, "no-desc")
		require.NoError(t, os.MkdirAll(noDescDir, 0o755))
		content := `---
name: no-desc
---

Content here.
`
		require.NoError(t, os.WriteFile(filepath.Join(noDescDir, "SKILL.md"), []byte(content), 0o644))

		loader, err := NewLoader(WithRoots(userRoot, ""))
		require.NoError(t, err)

		catalog, err := loader.Load(context.Background())
		require.NoError(t, err)

		_, exists := catalog.Get("no-desc")
		assert.False(t, exists)
		_, exists = catalog.Get("valid")
		assert.True(t, exists, "other valid entries still load")
	})

	t.Run("missing name", func(t *testing.T) {
		noNameDir := filepath.Join(userRoot, "no-name")
		require.NoError(t, os.MkdirAll(noNameDir, 0o755))
		content := `---
description: Missing the name field
---

Content here.
`
		require.NoError(t, os.WriteFile(filepath.Join(noNameDir, "SKILL.md"), []byte(content), 0o644))

		loader, err := NewLoader(WithRoots(userRoot, ""))
		require.NoError(t, err)

		catalog, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, catalog.Len())
	})

	t.Run("no frontmatter", func(t *testing.T) {
		plainDir := filepath.Join(userRoot, "plain")
		require.NoError(t, os.MkdirAll(plainDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(plainDir, "SKILL.md"), []byte("# Just content\n"), 0o644))

		loader, err := NewLoader(WithRoots(userRoot, ""))
		require.NoError(t, err)

		catalog, err := loader.Load(context.Background())
		require.NoError(t, err)
		_, exists := catalog.Get("plain")
		assert.False(t, exists)
	})

	t.Run("directory without SKILL.md", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(userRoot, "not-a-skill"), 0o755))

		loader, err := NewLoader(WithRoots(userRoot, ""))
		require.NoError(t, err)

		catalog, err := loader.Load(context.Background())
		require.NoError(t, err)
		_, exists := catalog.Get("not-a-skill")
		assert.False(t, exists)
	})
}

func TestLoadMissingRoots(t *testing.T) {
	loader, err := NewLoader(WithRoots("/non/existent/user", "/non/existent/project"))
	require.NoError(t, err)

	catalog, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
}

func TestLoadSkipsSymlinkEscape(t *testing.T) {
	base := t.TempDir()
	userRoot := filepath.Join(base, "skills")
	require.NoError(t, os.MkdirAll(userRoot, 0o755))

	// Skill directory outside the root, reachable via symlink
	outsideDir := writeSkill(t, base, "outside-skill", "outside-skill", "Lives outside the root")
	require.NoError(t, os.Symlink(outsideDir, filepath.Join(userRoot, "outside-skill")))

	writeSkill(t, userRoot, "inside-skill", "inside-skill", "Lives inside the root")

	loader, err := NewLoader(WithRoots(userRoot, ""))
	require.NoError(t, err)

	catalog, err := loader.Load(context.Background())
	require.NoError(t, err)

	_, exists := catalog.Get("outside-skill")
	assert.False(t, exists, "symlink escaping the root must be rejected")
	_, exists = catalog.Get("inside-skill")
	assert.True(t, exists)
}

func TestLoadAcceptsSymlinkWithinRoot(t *testing.T) {
	userRoot := t.TempDir()

	actual := writeSkill(t, userRoot, ".hidden-target", "aliased-skill", "Reached via symlink")
	require.NoError(t, os.Symlink(actual, filepath.Join(userRoot, "aliased-skill")))

	loader, err := NewLoader(WithRoots(userRoot, ""))
	require.NoError(t, err)

	catalog, err := loader.Load(context.Background())
	require.NoError(t, err)

	skill, exists := catalog.Get("aliased-skill")
	require.True(t, exists)
	assert.Equal(t, "Reached via symlink", skill.Description)
}

func TestLoadDuplicateNameWithinRoot(t *testing.T) {
	userRoot := t.TempDir()

	// Two directories declaring the same frontmatter name; the
	// lexicographically later directory is discovered last and wins.
	writeSkill(t, userRoot, "dir-a", "clashing", "from dir-a")
	writeSkill(t, userRoot, "dir-b", "clashing", "from dir-b")

	loader, err := NewLoader(WithRoots(userRoot, ""))
	require.NoError(t, err)

	catalog, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	skill, ok := catalog.Get("clashing")
	require.True(t, ok)
	assert.Equal(t, "from dir-b", skill.Description)
}

func TestLoadCancelledContext(t *testing.T) {
	loader, err := NewLoader(WithRoots(t.TempDir(), ""))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	catalog, err := loader.Load(ctx)
	assert.Error(t, err)
	assert.Nil(t, catalog)
}

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short description unchanged",
			input:    "short",
			expected: "short",
		},
		{
			name:     "exactly at the limit unchanged",
			input:    strings.Repeat("x", 40),
			expected: strings.Repeat("x", 40),
		},
		{
			name:     "long description gets ellipsis",
			input:    strings.Repeat("x", 41),
			expected: strings.Repeat("x", 37) + "...",
		},
		{
			name:     "multibyte runes counted as characters",
			input:    strings.Repeat("é", 41),
			expected: strings.Repeat("é", 37) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateDescription(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.LessOrEqual(t, len([]rune(result)), 40)
		})
	}
}

func TestExtractBodyContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "with frontmatter",
			input: `---
name: test
description: desc
---

# Content

Body text.`,
			expected: `# Content

Body text.`,
		},
		{
			name:     "no frontmatter",
			input:    "# Just content\nNo frontmatter.",
			expected: "# Just content\nNo frontmatter.",
		},
		{
			name: "incomplete frontmatter",
			input: `---
name: test
# No closing ---`,
			expected: `---
name: test
# No closing ---`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractBodyContent(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
