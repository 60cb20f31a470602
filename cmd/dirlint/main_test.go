// Package main provides tests for the dirlint CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dirlint/dirlint/internal/cli"
	"github.com/dirlint/dirlint/internal/cli/testutil"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "dirlint") {
		t.Errorf("version output should contain 'dirlint', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"check", "compile", "hooks", "init", "rules", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	root := testutil.SetupConformingTree(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"check", root})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("check command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "dirlint: ok") {
		t.Errorf("check output should contain 'dirlint: ok', got: %s", output)
	}

	if code := cli.ExitCode(err); code != cli.ExitOK {
		t.Errorf("exit code = %d, want %d", code, cli.ExitOK)
	}
}

func TestCheckCommandViolation(t *testing.T) {
	root := testutil.SetupConformingTree(t)
	offender := filepath.Join(root, "folder1", "pngs", "notes.txt")
	if err := os.WriteFile(offender, []byte("x\n"), 0644); err != nil {
		t.Fatalf("failed to plant offending file: %v", err)
	}

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"check", root})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("check should fail on a non-conforming tree")
	}

	want := "unexpected file: folder1/pngs/notes.txt"
	if err.Error() != want {
		t.Errorf("diagnostic = %q, want %q", err.Error(), want)
	}

	if code := cli.ExitCode(err); code != cli.ExitViolation {
		t.Errorf("exit code = %d, want %d", code, cli.ExitViolation)
	}
}

func TestCheckCommandBadRoot(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"check", filepath.Join(t.TempDir(), "no-such-dir")})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("check should fail for a missing root")
	}

	if code := cli.ExitCode(err); code != cli.ExitUsage {
		t.Errorf("exit code = %d, want %d", code, cli.ExitUsage)
	}
}

func TestHooksInstallNotARepo(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"hooks", "install", t.TempDir()})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("hooks install should fail outside a git repository")
	}

	if code := cli.ExitCode(err); code != cli.ExitNotRepo {
		t.Errorf("exit code = %d, want %d", code, cli.ExitNotRepo)
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			cmd := cli.NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"completion", shell})

			err := cmd.Execute()
			if err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	err := cmd.Execute()
	if err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
