// Package syntaxtest provides compact tree constructors for rule tests.
//
// The shapes mirror what the parser emits: declarations carry a
// ModifierList holding their annotations, a name identifier, and (for
// classes) an ObjectBody with the members.
package syntaxtest

import (
	"strings"

	"github.com/habittracker/structlint/pkg/syntax"
)

// Name builds an identifier for a simple name or a left-associative
// QualifiedNameExpr chain for a dotted one.
func Name(line int, name string) *syntax.Node {
	parts := strings.Split(name, ".")
	expr := syntax.Ident(line, parts[0])
	for _, p := range parts[1:] {
		expr = syntax.New(syntax.KindQualifiedNameExpr, line).AddChild(expr, syntax.Ident(line, p))
	}
	return expr
}

// Annotation builds an annotation use with the given member names as
// member-value pairs. Call it with no members for a marker or for an
// annotation with empty parentheses.
func Annotation(line int, name string, members ...string) *syntax.Node {
	a := syntax.New(syntax.KindAnnotationUse, line).AddChild(Name(line, name))
	for _, m := range members {
		pair := syntax.New(syntax.KindAnnotationMemberValuePair, line).
			AddChild(syntax.Ident(line, m), syntax.New(syntax.KindOther, line))
		a.AddChild(pair)
	}
	return a
}

// Modifiers builds a modifier list from annotations and keyword nodes.
func Modifiers(line int, items ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindModifierList, line).AddChild(items...)
}

// Class builds a class declaration with annotations and members.
func Class(line int, name string, annotations []*syntax.Node, members ...*syntax.Node) *syntax.Node {
	body := syntax.New(syntax.KindObjectBody, line).AddChild(members...)
	return syntax.New(syntax.KindClassDeclaration, line).AddChild(
		Modifiers(line, annotations...),
		syntax.Ident(line, name),
		body,
	)
}

// Field builds a field (or local variable) declaration of the given type.
func Field(line int, typ, name string, annotations ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindFieldDeclaration, line).AddChild(
		Modifiers(line, annotations...),
		syntax.New(syntax.KindTypeRef, line).AddChild(Name(line, typ)),
		syntax.Ident(line, name),
	)
}

// Method builds a method declaration whose body holds stmts.
func Method(line int, name string, annotations []*syntax.Node, stmts ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindMethodDeclaration, line).AddChild(
		Modifiers(line, annotations...),
		syntax.New(syntax.KindTypeRef, line).AddChild(syntax.Ident(line, "void")),
		syntax.Ident(line, name),
		syntax.New(syntax.KindBlock, line).AddChild(stmts...),
	)
}

// Call builds a method call whose callee may be dotted.
func Call(line int, callee string, args ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindMethodCall, line).AddChild(Name(line, callee)).AddChild(args...)
}

// Annotations is shorthand for a slice of annotation nodes.
func Annotations(nodes ...*syntax.Node) []*syntax.Node {
	return nodes
}

// File wraps top-level declarations in a root node.
func File(decls ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindOther, 1).AddChild(decls...)
}
