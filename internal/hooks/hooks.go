// Package hooks installs git hooks that run dirlint before commits and
// pushes. The generated scripts couple to the dirlint CLI contract only:
// exit 0 lets the git operation proceed, anything else blocks it.
package hooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotRepo reports that the target directory is not a git repository.
	ErrNotRepo = errors.New("not a git repository")
	// ErrHookExists reports that a hook file is already present.
	ErrHookExists = errors.New("hook already exists")
)

// supportedHooks are the git hooks dirlint knows how to install.
var supportedHooks = []string{"pre-commit", "pre-push"}

// DefaultHooks returns the hooks installed when none are named.
func DefaultHooks() []string {
	return append([]string(nil), supportedHooks...)
}

// Options control hook installation.
type Options struct {
	// Force overwrites existing hook files.
	Force bool
	// Hooks lists the hook names to install. Empty means DefaultHooks.
	Hooks []string
}

const hookScript = `#!/bin/sh
# Installed by dirlint (%s hook). Validates the repository layout.
exec dirlint check
`

// Install writes hook scripts into the repository's hooks directory and
// returns the paths written. When any requested hook already exists and
// Force is off, nothing is written.
func Install(repoRoot string, opts Options) ([]string, error) {
	dir, err := hooksDir(repoRoot)
	if err != nil {
		return nil, err
	}

	names := opts.Hooks
	if len(names) == 0 {
		names = DefaultHooks()
	}
	for _, name := range names {
		if !isSupported(name) {
			return nil, fmt.Errorf("unsupported hook %q (supported: %s)", name, strings.Join(supportedHooks, ", "))
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create hooks directory: %w", err)
	}

	// An existing hook fails the install before any file is written.
	paths := make([]string, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !opts.Force {
			return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrHookExists, path)
		}
		paths[i] = path
	}

	written := make([]string, 0, len(paths))
	for i, path := range paths {
		script := fmt.Sprintf(hookScript, names[i])
		if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
			return written, fmt.Errorf("failed to write hook %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func isSupported(name string) bool {
	for _, h := range supportedHooks {
		if h == name {
			return true
		}
	}
	return false
}

// hooksDir locates the hooks directory for the repository at repoRoot.
// .git is normally a directory; in worktrees and submodules it is a file
// holding a "gitdir: <path>" redirect.
func hooksDir(repoRoot string) (string, error) {
	gitPath := filepath.Join(repoRoot, ".git")
	fi, err := os.Stat(gitPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotRepo, repoRoot)
	}
	if fi.IsDir() {
		return filepath.Join(gitPath, "hooks"), nil
	}

	data, err := os.ReadFile(gitPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotRepo, repoRoot)
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%w: %s", ErrNotRepo, repoRoot)
	}
	dir := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoRoot, dir)
	}
	return filepath.Join(dir, "hooks"), nil
}
