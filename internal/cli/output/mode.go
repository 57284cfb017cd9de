// Package output renders command results for terminals, pipes and tools.
//
// Output mode "auto" resolves to styled text on a TTY and to markdown
// otherwise, so that piping structlint into a file or an agent produces
// plain, structured text. "json" is stable machine output.
package output

import "strings"

// OutputMode selects how results are rendered.
type OutputMode string

// Supported output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode parses an output format name. Unknown and empty names yield ModeAuto.
func Mode(s string) OutputMode {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeMarkdown, ModeJSON:
		return m
	case "md":
		return ModeMarkdown
	default:
		return ModeAuto
	}
}
