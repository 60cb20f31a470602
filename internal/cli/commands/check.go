package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dirlint/dirlint/internal/cli/output"
	"github.com/dirlint/dirlint/pkg/checker"
	"github.com/dirlint/dirlint/pkg/rules"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string // Output format: text, markdown, json
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Validate a directory tree against the built-in rules",
		Long: `Walk the tree rooted at the given path (default: current directory)
and validate it against the built-in structural rules.

Validation stops at the first violation. Required directories and files
are checked before unexpected entries, and children are visited in
lexicographic order, so the reported failure is reproducible. The exit
status is 0 when the tree conforms and 1 on the first violation.`,
		Example: `  # Validate the current directory
  dirlint check

  # Validate another tree
  dirlint check path/to/repo

  # Tolerate entries no rule lists
  dirlint check --allow-extra

  # Machine-readable result
  dirlint check --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runCheck(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// CheckOutput is the JSON output for the check command.
type CheckOutput struct {
	Status string `json:"status"`
	Root   string `json:"root"`
	Kind   string `json:"kind,omitempty"`
	Path   string `json:"path,omitempty"`
	Rule   string `json:"rule,omitempty"`
}

func runCheck(cmd *cobra.Command, root string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	// A bad root is an invocation error, not a structural violation, and
	// reports through the usage exit code.
	if st, err := os.Stat(root); err != nil {
		return fmt.Errorf("root path %q does not exist\nHint: dirlint check takes the directory to validate as its only argument", root)
	} else if !st.IsDir() {
		return fmt.Errorf("root path %q is not a directory\nHint: dirlint check takes the directory to validate as its only argument", root)
	}

	err := checker.Check(root, rules.Builtin(), checkerOptions(cmdCtx.Cfg, cmdCtx.Logger))

	if r.EffectiveMode() == output.ModeJSON {
		if jsonErr := r.JSON(checkResult(root, err)); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	if err != nil {
		return err
	}
	r.Success("dirlint: ok")
	return nil
}

// checkResult shapes the outcome for machine consumers.
func checkResult(root string, err error) CheckOutput {
	out := CheckOutput{Status: "ok", Root: root}
	var v *checker.Violation
	switch {
	case err == nil:
	case errors.As(err, &v):
		out.Status = "violation"
		out.Kind = strings.ReplaceAll(v.Kind.String(), " ", "_")
		out.Path = v.Path
		out.Rule = v.Rule
	default:
		out.Status = "error"
	}
	return out
}
