package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dirlint/dirlint/internal/cli/config"
	"github.com/dirlint/dirlint/internal/cli/output"
	"github.com/dirlint/dirlint/pkg/checker"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration
// and the logger stored on the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	cfg := &config.Config{
		AllowExtra:   os.Getenv("DIRLINT_ALLOW_EXTRA") == "true",
		StrictRoot:   os.Getenv("DIRLINT_STRICT_ROOT") == "true",
		Verbose:      os.Getenv("DIRLINT_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("DIRLINT_OUTPUT", config.DefaultOutput),
	}
	for _, name := range strings.Split(os.Getenv("DIRLINT_IGNORE"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Ignore = append(cfg.Ignore, name)
		}
	}
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// checkerOptions maps the loaded configuration onto traversal options.
func checkerOptions(cfg *config.Config, logger *slog.Logger) checker.Options {
	return checker.Options{
		AllowExtraEverywhere: cfg.AllowExtra,
		StrictRoot:           cfg.StrictRoot,
		Ignore:               cfg.Ignore,
		Logger:               logger,
	}
}
