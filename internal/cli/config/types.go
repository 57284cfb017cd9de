// Package config provides configuration management for the structlint CLI.
//
// Configuration is layered with koanf: built-in defaults, then a
// structlint.yaml, structlint.yml or structlint.toml project file, then
// STRUCTLINT_ environment variables, then explicitly set command-line flags.
package config

import (
	"sort"
	"strings"
)

// RuleOptions holds the option table for a single rule, keyed by option name.
type RuleOptions map[string]any

// LintConfig holds the lint section of the project configuration.
type LintConfig struct {
	Disabled []string               `koanf:"disabled"`
	Enabled  []string               `koanf:"enabled"`
	Severity map[string]string      `koanf:"severity"`
	Rules    map[string]RuleOptions `koanf:"rules"`
}

// canonicalize upper-cases rule IDs in the severity and rules maps. When a
// file spells an ID in two cases, the upper-case entry wins, which is also
// where environment values are loaded.
func (l *LintConfig) canonicalize() {
	if l == nil {
		return
	}
	if len(l.Severity) > 0 {
		severity := make(map[string]string, len(l.Severity))
		for _, id := range sortedKeys(l.Severity) {
			upper := strings.ToUpper(id)
			if _, ok := severity[upper]; ok && id != upper {
				continue
			}
			severity[upper] = l.Severity[id]
		}
		l.Severity = severity
	}
	if len(l.Rules) > 0 {
		rules := make(map[string]RuleOptions, len(l.Rules))
		// Exact upper-case IDs are merged last so their options win.
		ids := sortedKeys(l.Rules)
		sort.SliceStable(ids, func(i, j int) bool {
			return ids[i] != strings.ToUpper(ids[i]) && ids[j] == strings.ToUpper(ids[j])
		})
		for _, id := range ids {
			upper := strings.ToUpper(id)
			merged := rules[upper]
			if merged == nil {
				merged = make(RuleOptions)
			}
			for k, v := range l.Rules[id] {
				merged[k] = v
			}
			rules[upper] = merged
		}
		l.Rules = rules
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Config holds all CLI configuration options.
type Config struct {
	TreesDir     string      `koanf:"trees_dir"`
	StatePath    string      `koanf:"state_path"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Jobs         int         `koanf:"jobs"`
	DocsBaseURL  string      `koanf:"docs_base_url"`
	Lint         *LintConfig `koanf:"lint"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultTreesDir  = "."
	DefaultStateFile = ".structlint/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultJobs      = 0      // 0 means one worker per CPU
)

// configFileNames lists the project file names in lookup order.
var configFileNames = []string{"structlint.yaml", "structlint.yml", "structlint.toml"}

// IsConfigFileName reports whether name is a project file name.
func IsConfigFileName(name string) bool {
	for _, n := range configFileNames {
		if name == n {
			return true
		}
	}
	return false
}
