package lint

import (
	"fmt"

	"github.com/habittracker/structlint/pkg/syntax"
)

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "PR01"
	ID() string

	// Name returns the human-readable name, e.g., "persistence.column_annotation"
	Name() string

	// Group returns the category, e.g., "persistence", "structure", "testing"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)

	// Kinds returns the node kinds this rule wants to visit.
	Kinds() []syntax.Kind

	// Visit inspects one node of a declared kind and reports any findings.
	// It must not retain n or sink after returning.
	Visit(n *syntax.Node, sink Sink)
}

// Configurable is implemented by rules whose lookup tables can be
// replaced from configuration.
type Configurable interface {
	Rule

	// WithOptions returns a new rule built from opts. The receiver is
	// left unchanged.
	WithOptions(opts map[string]any) (Rule, error)
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	Kinds           []string `json:"kinds"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	info := RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
	for _, k := range r.Kinds() {
		info.Kinds = append(info.Kinds, k.String())
	}
	return info
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless across nodes and files; all context comes via the
// visited node and the tables captured by Visit.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "PR01"
	Name        string        // Human-readable name, e.g., "persistence.column_annotation"
	Group       string        // Category, e.g., "persistence", "structure", "testing"
	Description string        // Human-readable description
	Severity    Severity      // Default severity
	Kinds       []syntax.Kind // Node kinds the rule visits
	Visit       VisitFunc     // The visit callback built from default tables
	Configure   ConfigureFunc // Optional: rebuilds Visit from rule options
	ConfigKeys  []string      // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// VisitFunc inspects a node and reports diagnostics to sink.
type VisitFunc func(n *syntax.Node, sink Sink)

// ConfigureFunc builds a visit callback from rule-specific options.
type ConfigureFunc func(opts map[string]any) (VisitFunc, error)

// wrappedRuleDef wraps a RuleDef to implement Configurable.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Configurable {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                { return w.def.ID }
func (w *wrappedRuleDef) Name() string              { return w.def.Name }
func (w *wrappedRuleDef) Group() string             { return w.def.Group }
func (w *wrappedRuleDef) Description() string       { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string      { return w.def.ConfigKeys }
func (w *wrappedRuleDef) Kinds() []syntax.Kind      { return w.def.Kinds }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Visit(n *syntax.Node, sink Sink) {
	if w.def.Visit != nil {
		w.def.Visit(n, sink)
	}
}

func (w *wrappedRuleDef) WithOptions(opts map[string]any) (Rule, error) {
	if len(opts) == 0 {
		return w, nil
	}
	if w.def.Configure == nil {
		return nil, fmt.Errorf("rule %s accepts no options", w.def.ID)
	}
	visit, err := w.def.Configure(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid options for rule %s: %w", w.def.ID, err)
	}
	def := w.def
	def.Visit = visit
	return &wrappedRuleDef{def: def}, nil
}
