// Package config provides configuration management for the dirlint CLI.
//
// Configuration is assembled from defaults, an optional dirlint.yaml
// file, DIRLINT_* environment variables, and command-line flags, in
// ascending order of precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	AllowExtra   bool     `koanf:"allow_extra"`
	StrictRoot   bool     `koanf:"strict_root"`
	Ignore       []string `koanf:"ignore"`
	Verbose      bool     `koanf:"verbose"`
	OutputFormat string   `koanf:"output"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
