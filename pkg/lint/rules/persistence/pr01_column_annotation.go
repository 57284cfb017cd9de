package persistence

import (
	"fmt"

	"github.com/habittracker/structlint/pkg/lint"
	"github.com/habittracker/structlint/pkg/syntax"
)

func init() {
	lint.Register(ColumnAnnotation)
}

// ColumnAnnotationTables are the lookup tables of PR01.
type ColumnAnnotationTables struct {
	// EntityAnnotations mark a class whose fields are checked.
	EntityAnnotations []string `option:"entity_annotations"`
	// RequiredAnnotation must be present on each field, with attributes.
	RequiredAnnotation string `option:"required_annotation"`
	// ExcludedAnnotations exempt a field from the check.
	ExcludedAnnotations []string `option:"excluded_annotations"`
}

// DefaultColumnAnnotationTables returns the JPA naming convention.
func DefaultColumnAnnotationTables() ColumnAnnotationTables {
	return ColumnAnnotationTables{
		EntityAnnotations:  []string{"Entity"},
		RequiredAnnotation: "Column",
		ExcludedAnnotations: []string{
			"Id",
			"JoinColumn",
			"OneToMany",
			"ManyToOne",
			"OneToOne",
			"ManyToMany",
			"Transient",
			"Embedded",
			"EmbeddedId",
		},
	}
}

// ColumnAnnotation requires explicit column mapping on entity fields.
var ColumnAnnotation = lint.RuleDef{
	ID:          "PR01",
	Name:        "persistence.column_annotation",
	Group:       "persistence",
	Description: "Fields of entity classes must be annotated with @Column specifying at least one attribute.",
	Severity:    lint.SeverityWarning,
	Kinds:       []syntax.Kind{syntax.KindFieldDeclaration},
	Visit:       NewColumnAnnotationCheck(DefaultColumnAnnotationTables()).Visit,
	Configure:   configureColumnAnnotation,
	ConfigKeys:  []string{"entity_annotations", "required_annotation", "excluded_annotations"},
	Rationale: `Implicit column mapping derives the column name and type from the field, so
renaming a field silently changes the schema. An explicit @Column with at
least one attribute pins the mapping.`,
	BadExample: `@Entity
public class Plan {
    private String name;

    @Column()
    private Long price;
}`,
	GoodExample: `@Entity
public class Plan {
    @Column(name = "name", nullable = false)
    private String name;

    @Id
    private Long id;
}`,
	Fix: "Add @Column(name = \"...\") to the field, or mark it @Transient if it is not persisted.",
}

func configureColumnAnnotation(opts map[string]any) (lint.VisitFunc, error) {
	var override ColumnAnnotationTables
	if err := lint.DecodeOptions(opts, &override); err != nil {
		return nil, err
	}

	def := DefaultColumnAnnotationTables()
	tables := ColumnAnnotationTables{
		EntityAnnotations:   lint.OrDefault(override.EntityAnnotations, def.EntityAnnotations),
		RequiredAnnotation:  lint.StringOrDefault(override.RequiredAnnotation, def.RequiredAnnotation),
		ExcludedAnnotations: lint.OrDefault(override.ExcludedAnnotations, def.ExcludedAnnotations),
	}
	return NewColumnAnnotationCheck(tables).Visit, nil
}

// ColumnAnnotationCheck is PR01 bound to a set of tables.
type ColumnAnnotationCheck struct {
	entity   syntax.NameSet
	excluded syntax.NameSet
	required string
	message  string
}

// NewColumnAnnotationCheck builds the check from tables.
func NewColumnAnnotationCheck(t ColumnAnnotationTables) *ColumnAnnotationCheck {
	return &ColumnAnnotationCheck{
		entity:   syntax.NewNameSet(t.EntityAnnotations...),
		excluded: syntax.NewNameSet(t.ExcludedAnnotations...),
		required: t.RequiredAnnotation,
		message:  fmt.Sprintf("Field must be annotated with @%s specifying at least one attribute", t.RequiredAnnotation),
	}
}

// Visit checks one field declaration.
func (c *ColumnAnnotationCheck) Visit(n *syntax.Node, sink lint.Sink) {
	if !isField(n) {
		return
	}

	class := n.Ancestor(syntax.KindClassDeclaration)
	if class == nil || !syntax.HasAnyAnnotation(class, c.entity) {
		return
	}

	// Exclusion wins over the requirement.
	if syntax.HasAnyAnnotation(n, c.excluded) {
		return
	}

	column, ok := syntax.FindAnnotation(n, c.required)
	if ok && column.HasAttributes() {
		return
	}

	sink.Report(lint.Diagnostic{
		Line:        n.Line,
		Message:     c.message,
		ImpactScore: lint.ImpactMedium.Int(),
	})
}

// isField reports whether a field declaration is a class member rather
// than a local variable: the nearest enclosing body or block decides.
func isField(n *syntax.Node) bool {
	if !n.Is(syntax.KindFieldDeclaration) {
		return false
	}
	return n.Ancestor(syntax.KindObjectBody, syntax.KindBlock).Is(syntax.KindObjectBody)
}
