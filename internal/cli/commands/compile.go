package commands

import (
	"fmt"
	"os"

	"github.com/dirlint/dirlint/internal/shellgen"
	"github.com/dirlint/dirlint/pkg/rules"
	"github.com/spf13/cobra"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	Out string // Output path; empty writes to stdout
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Emit a standalone bash verifier for the built-in rules",
		Long: `Compile the built-in rule set into a self-contained bash script.

The script validates the directory given as its first argument (default:
the current directory) the same way 'dirlint check' does: one diagnostic
line on the first violation and exit status 1, or "dirlint: ok" and exit
status 0. It needs nothing but bash, so it suits environments where the
dirlint binary is not installed.

--allow-extra, --strict-root, and --ignore are baked into the generated
script at compile time.`,
		Example: `  # Print the verifier to stdout
  dirlint compile

  # Write an executable script
  dirlint compile --out check-layout.sh

  # Bake options into the script
  dirlint compile --allow-extra --out check-layout.sh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the script to this path instead of stdout")

	return cmd
}

func runCompile(cmd *cobra.Command, opts *CompileOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	script := shellgen.Generate(rules.Builtin(), shellgen.Options{
		AllowExtraEverywhere: cfg.AllowExtra,
		StrictRoot:           cfg.StrictRoot,
		Ignore:               cfg.Ignore,
	})

	if opts.Out == "" {
		_, err := fmt.Fprint(r.Writer(), script)
		return err
	}

	if err := os.WriteFile(opts.Out, []byte(script), 0o755); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}

	r.StatusLine(opts.Out, "success", "executable")
	r.Println("")
	r.Success("Verifier script written!")
	r.Muted(fmt.Sprintf("Run it with: %s [root]", opts.Out))

	return nil
}
