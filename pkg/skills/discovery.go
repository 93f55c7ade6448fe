package skills

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/jingkaihe/skillet/pkg/logger"
	"github.com/jingkaihe/skillet/pkg/safepath"
)

const skillFileName = "SKILL.md"

// Loader discovers skills from a user-level and a project-level root and
// merges them into a catalog. Loading is read-only and idempotent; every
// call rebuilds the catalog from current filesystem contents.
type Loader struct {
	userRoot    string
	projectRoot string
}

// Option is a function that configures a Loader
type Option func(*Loader) error

// WithRoots sets explicit user and project skill roots
func WithRoots(userRoot, projectRoot string) Option {
	return func(l *Loader) error {
		l.userRoot = userRoot
		l.projectRoot = projectRoot
		return nil
	}
}

// WithDefaultRoots initializes the conventional roots: the user-global
// skills directory under the home directory and the repo-local one.
func WithDefaultRoots() Option {
	return func(l *Loader) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		l.userRoot = filepath.Join(homeDir, ".skillet", "skills")
		l.projectRoot = filepath.Join(".", ".skillet", "skills")
		return nil
	}
}

// NewLoader creates a new skill loader
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{}

	if len(opts) == 0 {
		if err := WithDefaultRoots()(l); err != nil {
			return nil, err
		}
	} else {
		for _, opt := range opts {
			if err := opt(l); err != nil {
				return nil, err
			}
		}
	}

	if l.userRoot == "" && l.projectRoot == "" {
		return nil, errors.New("no skill roots configured")
	}

	return l, nil
}

// UserRoot returns the configured user-level root
func (l *Loader) UserRoot() string { return l.userRoot }

// ProjectRoot returns the configured project-level root
func (l *Loader) ProjectRoot() string { return l.projectRoot }

// Load builds a fresh catalog from both roots. User entries are discovered
// first; project entries then either append under new names or overwrite the
// record in place, keeping the user entry's position. Unavailable roots
// contribute zero entries and invalid entries are skipped with a warning, so
// Load only fails when the context is cancelled.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog := NewCatalog()
	l.loadRoot(ctx, catalog, l.userRoot, SourceUser)
	l.loadRoot(ctx, catalog, l.projectRoot, SourceProject)
	return catalog, nil
}

// loadRoot merges one root's skills into the catalog. Entries are visited in
// directory-name order (os.ReadDir sorts), which fixes discovery order.
func (l *Loader) loadRoot(ctx context.Context, catalog *Catalog, root string, source Source) {
	if root == "" {
		return
	}

	log := logger.G(ctx).WithField("root", root).WithField("source", string(source))

	entries, err := os.ReadDir(root)
	if err != nil {
		log.WithError(err).Debug("Skill root unavailable, contributing zero entries")
		return
	}

	for _, entry := range entries {
		entryPath := filepath.Join(root, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skillPath := filepath.Join(entryPath, skillFileName)
		if err := safepath.Validate(skillPath, root); err != nil {
			if safepath.IsSecurityError(err) {
				log.WithError(err).WithField("path", skillPath).Warn("Skill path escapes its root, skipping")
			} else {
				log.WithError(err).WithField("path", skillPath).Debug("Skill definition not readable, skipping")
			}
			continue
		}

		skill, err := loadSkill(skillPath)
		if err != nil {
			log.WithError(err).WithField("path", skillPath).Warn("Invalid skill definition, skipping")
			continue
		}

		skill.Source = source
		skill.Directory = entryPath

		if existing, ok := catalog.Get(skill.Name); ok && existing.Source == source {
			log.WithField("skill", skill.Name).Warn("Duplicate skill name within root, keeping the last discovered")
		}
		catalog.Upsert(skill)
	}
}

// loadSkill loads a single skill from its SKILL.md file
func loadSkill(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)

	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Skill{
		Name:             name,
		Description:      description,
		ShortDescription: truncateDescription(description),
		Content:          extractBodyContent(string(content)),
	}, nil
}

// extractBodyContent removes YAML frontmatter and returns the body
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
