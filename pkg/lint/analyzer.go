package lint

import (
	"fmt"
	"log/slog"

	"github.com/habittracker/structlint/pkg/syntax"
)

// Analyzer runs lint rules against syntax trees.
//
// An Analyzer holds no mutable state after construction, so one instance
// may analyze many files concurrently.
type Analyzer struct {
	config *Config
	rules  []Rule
	byKind map[syntax.Kind][]Rule
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer over all registered rules.
func NewAnalyzer(config *Config) (*Analyzer, error) {
	return NewAnalyzerWithRules(config, GetAllRules())
}

// NewAnalyzerWithRules creates an analyzer over the given rules, applying
// the configuration's rule filter and rule options.
func NewAnalyzerWithRules(config *Config, rules []Rule) (*Analyzer, error) {
	if config == nil {
		config = NewConfig()
	}

	known := make(map[string]bool, len(rules))
	for _, r := range rules {
		known[r.ID()] = true
	}
	for id := range config.RuleOptions {
		if !known[id] {
			return nil, fmt.Errorf("options given for unknown rule %q", id)
		}
	}

	a := &Analyzer{
		config: config,
		byKind: make(map[syntax.Kind][]Rule),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, rule := range rules {
		if config.IsDisabled(rule.ID()) {
			continue
		}

		if opts := config.GetRuleOptions(rule.ID()); len(opts) > 0 {
			c, ok := rule.(Configurable)
			if !ok {
				return nil, fmt.Errorf("rule %s accepts no options", rule.ID())
			}
			configured, err := c.WithOptions(opts)
			if err != nil {
				return nil, err
			}
			rule = configured
		}

		a.rules = append(a.rules, rule)
		for _, k := range rule.Kinds() {
			a.byKind[k] = append(a.byKind[k], rule)
		}
	}
	return a, nil
}

// WithLogger sets the logger that receives contained rule panics. Call it
// before analyzing.
func (a *Analyzer) WithLogger(logger *slog.Logger) *Analyzer {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Rules returns the enabled rules in dispatch order.
func (a *Analyzer) Rules() []Rule {
	return a.rules
}

// Analyze walks the tree depth-first in pre-order and invokes every
// enabled rule on each node of a kind it declared.
func (a *Analyzer) Analyze(root *syntax.Node) []Diagnostic {
	if root == nil {
		return nil
	}

	var diagnostics Collector
	syntax.Walk(root, func(n *syntax.Node) bool {
		for _, rule := range a.byKind[n.Kind] {
			a.visit(rule, n, &diagnostics)
		}
		return true
	})
	return diagnostics.Diagnostics()
}

// visit runs a single rule callback. A panicking rule loses its findings
// for this node and nothing else.
func (a *Analyzer) visit(rule Rule, n *syntax.Node, out Sink) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("rule panicked", "rule", rule.ID(), "kind", n.Kind.String(), "line", n.Line, "panic", r)
		}
	}()

	severity := a.config.GetSeverity(rule.ID(), rule.DefaultSeverity())
	rule.Visit(n, SinkFunc(func(d Diagnostic) {
		d.RuleID = rule.ID()
		d.Severity = severity
		if d.DocumentationURL == "" {
			d.DocumentationURL = BuildDocURL(rule.ID())
		}
		out.Report(d)
	}))
}
