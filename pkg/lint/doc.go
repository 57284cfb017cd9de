// Package lint provides the rule dispatch framework for structural source linting.
//
// # Architecture
//
// Rules declare the syntax node kinds they are interested in and a visit
// callback. The Analyzer builds a kind index once, walks each tree in
// pre-order and invokes every interested rule on each matching node. Rules
// report diagnostics carrying a line and a message; the analyzer stamps the
// rule ID, the effective severity and the documentation URL.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their packages are imported:
//
//	import _ "github.com/habittracker/structlint/pkg/lint/rules"
//
// # Rule Categories
//
//   - PR (Persistence): Rules about persistence mapping annotations
//   - ST (Structure): Rules about class structure and contracts
//   - TS (Testing): Rules about test classes and assertions
//
// # Using the Registry
//
//	infos := lint.AllRules()
//	rule, ok := lint.GetRuleByID("PR01")
//
// # Configuration
//
// Use Config to control which rules are enabled, their severity and options:
//
//	config := lint.NewConfig()
//	config.Disable("TS01")
//	config.SetSeverity("ST01", lint.SeverityError)
//	config.SetRuleOptions("PR01", map[string]any{"required_annotation": "Column"})
//
//	analyzer, err := lint.NewAnalyzer(config)
//	if err != nil {
//		return err
//	}
//	diags := analyzer.Analyze(root)
//
// # Creating Custom Rules
//
// Implement the Rule interface or use RuleDef:
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "custom.my_rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    lint.SeverityWarning,
//		Kinds:       []syntax.Kind{syntax.KindClassDeclaration},
//		Visit:       visitMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
