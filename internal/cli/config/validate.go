package config

import (
	"fmt"
	"strings"
)

// validOutputFormats are the accepted values for the output key.
var validOutputFormats = []string{"auto", "text", "markdown", "md", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputFormat != "" {
		ok := false
		for _, f := range validOutputFormats {
			if c.OutputFormat == f {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("invalid output format %q\nHint: valid values are auto, text, markdown, json", c.OutputFormat)
		}
	}

	for _, name := range c.Ignore {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid ignore entry %q\nHint: ignore entries are bare file or directory names, not paths", name)
		}
	}

	return nil
}
