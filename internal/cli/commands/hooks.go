package commands

import (
	"github.com/dirlint/dirlint/internal/hooks"
	"github.com/spf13/cobra"
)

// NewHooksCommand creates the hooks command group.
func NewHooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage git hooks that run the checker",
		Long: `Manage git hooks that validate the repository layout.

Installed hooks exec 'dirlint check' and propagate its exit status, so a
commit or push is rejected while the tree does not conform.`,
	}

	cmd.AddCommand(newHooksInstallCommand())

	return cmd
}

// HooksInstallOptions holds options for the hooks install command.
type HooksInstallOptions struct {
	Force bool     // Overwrite existing hook scripts
	Hooks []string // Hook names; empty installs the defaults
}

func newHooksInstallCommand() *cobra.Command {
	opts := &HooksInstallOptions{}
	cmd := &cobra.Command{
		Use:   "install [repo]",
		Short: "Install pre-commit and pre-push hooks",
		Long: `Install hook scripts into the repository's hook directory.

The repository defaults to the current directory; worktree-style layouts
(a .git file pointing at the real git directory) are supported. Existing
hooks are never overwritten unless --force is given, and a target that is
not a git repository fails with its own exit status.`,
		Example: `  # Install pre-commit and pre-push in the current repository
  dirlint hooks install

  # Install into another repository
  dirlint hooks install path/to/repo

  # Install only the pre-push hook
  dirlint hooks install --hook pre-push

  # Replace existing hooks
  dirlint hooks install --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := "."
			if len(args) > 0 {
				repo = args[0]
			}
			return runHooksInstall(cmd, repo, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing hooks")
	cmd.Flags().StringSliceVar(&opts.Hooks, "hook", nil, "Hook name to install (repeatable; default: pre-commit, pre-push)")

	return cmd
}

func runHooksInstall(cmd *cobra.Command, repo string, opts *HooksInstallOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	installed, err := hooks.Install(repo, hooks.Options{
		Force: opts.Force,
		Hooks: opts.Hooks,
	})
	if err != nil {
		return err
	}

	for _, path := range installed {
		r.StatusLine(path, "success", "installed")
	}
	r.Println("")
	r.Success("Git hooks installed!")
	r.Muted("Commits and pushes now run 'dirlint check' first.")

	return nil
}
