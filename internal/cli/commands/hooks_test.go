package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirlint/dirlint/internal/cli/config"
	"github.com/dirlint/dirlint/internal/hooks"
)

func execHooks(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := NewHooksCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func gitRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git", "hooks"), 0755))
	return repo
}

func TestHooksInstallCommand(t *testing.T) {
	repo := gitRepo(t)

	out, err := execHooks(t, "install", repo)
	require.NoError(t, err)
	assert.Contains(t, out, "pre-commit")
	assert.Contains(t, out, "pre-push")
	assert.Contains(t, out, "Git hooks installed!")

	for _, name := range []string{"pre-commit", "pre-push"} {
		st, err := os.Stat(filepath.Join(repo, ".git", "hooks", name))
		require.NoError(t, err, "hook %s should exist", name)
		assert.NotZero(t, st.Mode().Perm()&0o100, "hook %s should be executable", name)
	}
}

func TestHooksInstallCommandSingleHook(t *testing.T) {
	repo := gitRepo(t)

	_, err := execHooks(t, "install", "--hook", "pre-push", repo)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(repo, ".git", "hooks", "pre-push"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(repo, ".git", "hooks", "pre-commit"))
	assert.True(t, os.IsNotExist(err), "pre-commit should not be installed")
}

func TestHooksInstallCommandNotARepo(t *testing.T) {
	_, err := execHooks(t, "install", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, hooks.ErrNotRepo))
}

func TestHooksInstallCommandOverwrite(t *testing.T) {
	repo := gitRepo(t)
	existing := filepath.Join(repo, ".git", "hooks", "pre-commit")
	require.NoError(t, os.WriteFile(existing, []byte("#!/bin/sh\necho custom\n"), 0o755))

	_, err := execHooks(t, "install", repo)
	require.Error(t, err)
	assert.True(t, errors.Is(err, hooks.ErrHookExists))
	assert.Contains(t, err.Error(), "--force")

	_, err = execHooks(t, "install", "--force", repo)
	require.NoError(t, err)

	content, readErr := os.ReadFile(existing)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "dirlint check")
}
