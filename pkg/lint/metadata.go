package lint

import (
	"fmt"
	"strings"
)

// DocsBaseURL is the base of rule documentation links. It is empty unless
// configured, in which case diagnostics carry no documentation URL.
var DocsBaseURL = ""

// BuildDocURL constructs a documentation URL for a rule.
func BuildDocURL(ruleID string) string {
	if DocsBaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", DocsBaseURL, strings.ToLower(ruleID))
}

// SetDocsBaseURL overrides the documentation base URL.
// Useful for an internal documentation site.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL clears the documentation base URL.
func ResetDocsBaseURL() {
	DocsBaseURL = ""
}

// ImpactLevel represents predefined impact score ranges.
type ImpactLevel int

const (
	// ImpactLow for minor issues (0-30)
	ImpactLow ImpactLevel = 20
	// ImpactMedium for moderate issues (31-60)
	ImpactMedium ImpactLevel = 50
	// ImpactHigh for significant issues (61-80)
	ImpactHigh ImpactLevel = 70
	// ImpactCritical for critical issues (81-100)
	ImpactCritical ImpactLevel = 90
)

// Int returns the impact score as an integer.
func (l ImpactLevel) Int() int {
	return int(l)
}
