package structure

import (
	"fmt"

	"github.com/habittracker/structlint/pkg/lint"
	"github.com/habittracker/structlint/pkg/syntax"
)

func init() {
	lint.Register(EqualsHashCode)
}

// EqualsHashCodeTables are the lookup tables of ST01.
type EqualsHashCodeTables struct {
	// ExemptAnnotations mark classes whose methods are generated.
	ExemptAnnotations []string `option:"exempt_annotations"`
	// RequiredMethods names the two methods that must be overridden.
	RequiredMethods []string `option:"required_methods"`
	// OverrideAnnotation marks a method as a contract override.
	OverrideAnnotation string `option:"override_annotation"`
}

// DefaultEqualsHashCodeTables returns the Java object contract with Lombok exemptions.
func DefaultEqualsHashCodeTables() EqualsHashCodeTables {
	return EqualsHashCodeTables{
		ExemptAnnotations: []string{
			"Data",
			"EqualsAndHashCode",
			"Value",
			"lombok.Data",
			"lombok.EqualsAndHashCode",
			"lombok.Value",
		},
		RequiredMethods:    []string{"equals", "hashCode"},
		OverrideAnnotation: "Override",
	}
}

// EqualsHashCode requires both halves of the equality contract.
var EqualsHashCode = lint.RuleDef{
	ID:          "ST01",
	Name:        "structure.equals_hashcode",
	Group:       "structure",
	Description: "Classes must override equals() and hashCode() unless they are generated.",
	Severity:    lint.SeverityWarning,
	Kinds:       []syntax.Kind{syntax.KindClassDeclaration},
	Visit:       NewEqualsHashCodeCheck(DefaultEqualsHashCodeTables()).Visit,
	Configure:   configureEqualsHashCode,
	ConfigKeys:  []string{"exempt_annotations", "required_methods", "override_annotation"},
	Rationale: `Objects that are equal must have equal hash codes. Overriding only one of the
two breaks hash-based collections. The @Override marker distinguishes a real
contract override from an unrelated overload such as equals(Plan).`,
	BadExample: `public class Plan {
    @Override
    public boolean equals(Object o) { ... }
}`,
	GoodExample: `@EqualsAndHashCode
public class Plan { ... }`,
	Fix: "Override both methods with @Override, or generate them with Lombok.",
}

func configureEqualsHashCode(opts map[string]any) (lint.VisitFunc, error) {
	var override EqualsHashCodeTables
	if err := lint.DecodeOptions(opts, &override); err != nil {
		return nil, err
	}
	if n := len(override.RequiredMethods); n != 0 && n != 2 {
		return nil, fmt.Errorf("required_methods must name exactly two methods, got %d", n)
	}
	if m := override.RequiredMethods; len(m) == 2 && m[0] == m[1] {
		return nil, fmt.Errorf("required_methods must name two different methods, got %q twice", m[0])
	}

	def := DefaultEqualsHashCodeTables()
	tables := EqualsHashCodeTables{
		ExemptAnnotations:  lint.OrDefault(override.ExemptAnnotations, def.ExemptAnnotations),
		RequiredMethods:    lint.OrDefault(override.RequiredMethods, def.RequiredMethods),
		OverrideAnnotation: lint.StringOrDefault(override.OverrideAnnotation, def.OverrideAnnotation),
	}
	return NewEqualsHashCodeCheck(tables).Visit, nil
}

// EqualsHashCodeCheck is ST01 bound to a set of tables.
type EqualsHashCodeCheck struct {
	exempt   syntax.NameSet
	first    string
	second   string
	override string
	message  string
}

// NewEqualsHashCodeCheck builds the check from tables. RequiredMethods
// must hold two names.
func NewEqualsHashCodeCheck(t EqualsHashCodeTables) *EqualsHashCodeCheck {
	c := &EqualsHashCodeCheck{
		exempt:   syntax.NewNameSet(t.ExemptAnnotations...),
		override: t.OverrideAnnotation,
	}
	if len(t.RequiredMethods) == 2 {
		c.first, c.second = t.RequiredMethods[0], t.RequiredMethods[1]
	}
	c.message = fmt.Sprintf("Class must declare %s() and %s()", c.first, c.second)
	return c
}

// methodPresence records which required overrides a class declares.
type methodPresence struct {
	first  bool
	second bool
}

func (p methodPresence) missing() bool {
	return !p.first || !p.second
}

// Visit checks one class declaration.
func (c *EqualsHashCodeCheck) Visit(n *syntax.Node, sink lint.Sink) {
	if !n.Is(syntax.KindClassDeclaration) {
		return
	}
	if syntax.HasAnyAnnotation(n, c.exempt) {
		return
	}

	if c.scan(n).missing() {
		sink.Report(lint.Diagnostic{
			Line:        n.Line,
			Message:     c.message,
			ImpactScore: lint.ImpactHigh.Int(),
		})
	}
}

// scan folds over the direct methods of a class. Nested classes are
// separate declarations and are visited on their own.
func (c *EqualsHashCodeCheck) scan(class *syntax.Node) methodPresence {
	var p methodPresence
	body := class.FirstChild(syntax.KindObjectBody)
	for _, m := range body.ChildrenOf(syntax.KindMethodDeclaration) {
		p = c.record(p, m)
	}
	return p
}

func (c *EqualsHashCodeCheck) record(p methodPresence, method *syntax.Node) methodPresence {
	name := method.Name()
	if name == "" {
		return p
	}
	if _, ok := syntax.FindAnnotation(method, c.override); !ok {
		return p
	}
	switch name {
	case c.first:
		p.first = true
	case c.second:
		p.second = true
	}
	return p
}
