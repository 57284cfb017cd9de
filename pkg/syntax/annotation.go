package syntax

// Annotation is a view over an AnnotationUse node.
type Annotation struct {
	node *Node
}

// AsAnnotation returns the annotation view of n if n is an AnnotationUse.
func AsAnnotation(n *Node) (Annotation, bool) {
	if !n.Is(KindAnnotationUse) {
		return Annotation{}, false
	}
	return Annotation{node: n}, true
}

// Node returns the underlying AnnotationUse node.
func (a Annotation) Node() *Node { return a.node }

// Line returns the line of the annotation.
func (a Annotation) Line() int {
	if a.node == nil {
		return 0
	}
	return a.node.Line
}

// Name returns the annotation name as written, simple or dotted.
// It is "" when the name cannot be resolved.
func (a Annotation) Name() string {
	for _, c := range a.node.Children() {
		if c.Kind == KindIdentifier || c.Kind == KindQualifiedNameExpr {
			return QualifiedName(c)
		}
	}
	return ""
}

// Pairs returns the member-value pairs in source order.
func (a Annotation) Pairs() []*Node {
	return a.node.ChildrenOf(KindAnnotationMemberValuePair)
}

// HasAttributes reports whether at least one member-value pair is present.
func (a Annotation) HasAttributes() bool {
	return a.node.FirstChild(KindAnnotationMemberValuePair) != nil
}

// Annotations returns the annotations in the modifier list of a declaration.
func Annotations(decl *Node) []Annotation {
	mods := decl.FirstChild(KindModifierList)
	if mods == nil {
		return nil
	}
	var out []Annotation
	for _, c := range mods.children {
		if a, ok := AsAnnotation(c); ok {
			out = append(out, a)
		}
	}
	return out
}

// FindAnnotation returns the first annotation on decl whose name is exactly
// name.
func FindAnnotation(decl *Node, name string) (Annotation, bool) {
	for _, a := range Annotations(decl) {
		if a.Name() == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// HasAnyAnnotation reports whether decl carries an annotation whose name is
// in names.
func HasAnyAnnotation(decl *Node, names NameSet) bool {
	if len(names) == 0 {
		return false
	}
	for _, a := range Annotations(decl) {
		if names.Has(a.Name()) {
			return true
		}
	}
	return false
}

// NameSet is an exact-match, case-sensitive set of names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names. Empty strings are dropped so that an
// unresolved name never matches.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	if name == "" {
		return false
	}
	_, ok := s[name]
	return ok
}
