package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/habittracker/structlint/pkg/lint"
)

var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TreesDir == "" {
		return fmt.Errorf("trees_dir is required")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if !isValidOutput(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if c.Lint != nil {
		for id, sev := range c.Lint.Severity {
			if _, ok := lint.ParseSeverity(sev); !ok {
				return fmt.Errorf("lint.severity.%s: invalid severity %q (expected error, warning, info or hint)", id, sev)
			}
		}
	}
	return nil
}

// ValidateDirectories checks if the trees directory exists.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.TreesDir); os.IsNotExist(err) {
		return fmt.Errorf("trees directory does not exist: %s\nHint: Create the directory or use --trees-dir to specify a different path", c.TreesDir)
	}
	return nil
}

func isValidOutput(s string) bool {
	if s == "" {
		return true
	}
	for _, v := range validOutputs {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
