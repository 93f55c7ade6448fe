// Package safepath validates that candidate filesystem paths stay confined
// to a declared root directory. Both sides are resolved to absolute,
// symlink-free form before comparison, so neither parent-traversal segments
// nor symlinks pointing outside the root can escape it.
package safepath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// SecurityError reports a candidate path that resolves outside its declared root.
type SecurityError struct {
	Path string
	Root string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("path %q resolves outside of root %q", e.Path, e.Root)
}

// Validate checks that candidate, after resolving relative segments and
// symlinks, is the declared root or a descendant of it. It returns a
// *SecurityError when the candidate escapes the root, and a wrapped
// filesystem error when either path cannot be resolved at all.
func Validate(candidate, root string) error {
	resolvedRoot, err := resolve(root)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve root %q", root)
	}

	resolvedCandidate, err := resolve(candidate)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve path %q", candidate)
	}

	rel, err := filepath.Rel(resolvedRoot, resolvedCandidate)
	if err != nil {
		return &SecurityError{Path: candidate, Root: root}
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return &SecurityError{Path: candidate, Root: root}
	}

	return nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// IsSecurityError reports whether err (or anything it wraps) is a SecurityError.
func IsSecurityError(err error) bool {
	var secErr *SecurityError
	return errors.As(err, &secErr)
}
