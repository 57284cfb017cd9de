// Package rules provides the structural lint rules for annotated
// object-oriented sources.
//
// Rules are organized by category:
//   - persistence: Rules about persistence mapping annotations (PR01)
//   - structure: Rules about class structure and contracts (ST01)
//   - testcase: Rules about test classes and assertions (TS01)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/habittracker/structlint/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/habittracker/structlint/pkg/lint/rules/persistence"
package rules
