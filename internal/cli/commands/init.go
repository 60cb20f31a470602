package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dirlint/dirlint/pkg/checker"
	"github.com/spf13/cobra"
)

// starterConfig is the dirlint.yaml written by init. Rules are compiled
// into the binary; the file only tunes enforcement.
const starterConfig = `# dirlint options. Structural rules are compiled into the binary;
# this file only tunes how they are enforced.

# Tolerate entries no rule lists, everywhere.
allow_extra: false

# Enforce rules at the traversal root as strictly as in nested
# directories.
strict_root: false

# Extra basenames to skip during enumeration.
# ignore:
#   - .DS_Store

# Output mode: auto, text, markdown, json.
output: auto
`

// markerContent fills the reserved marker file. Only the basename
// matters; dirlint never reads the content.
const markerContent = `Layout validated by dirlint. This marker is not parsed; rules are
built into the binary.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Mark a directory tree as governed by dirlint",
		Long: `Initialize a directory for dirlint.

This creates:
  - ` + checker.MarkerFile + ` marker file (reserved basename, ignored by every rule)
  - dirlint.yaml starter configuration`,
		Example: `  # Initialize the current directory
  dirlint init

  # Initialize another directory
  dirlint init path/to/repo

  # Force overwrite existing files
  dirlint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cmdCtx := NewCommandContext(cmd)
			return runInit(cmdCtx, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmdCtx *CommandContext, dir string, force bool) error {
	r := cmdCtx.Renderer

	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := []struct {
		name    string
		content string
	}{
		{"dirlint.yaml", starterConfig},
		{checker.MarkerFile, markerContent},
	}

	// A conflict fails the init before any file is written.
	if !force {
		for _, f := range files {
			if _, err := os.Stat(filepath.Join(dir, f.name)); err == nil {
				return fmt.Errorf("%s already exists. Use --force to overwrite", f.name)
			}
		}
	}

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		r.StatusLine(f.name, "success", "")
	}

	r.Println("")
	r.Success("dirlint initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'dirlint check' to validate the layout")
	r.Println("  2. Run 'dirlint hooks install' to enforce it on commit and push")
	r.Println("  3. Tune enforcement in dirlint.yaml")

	return nil
}
