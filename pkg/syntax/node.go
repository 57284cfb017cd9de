// Package syntax provides the read-only syntax tree consumed by lint rules.
//
// Trees are produced by an external parser, either built directly with
// New/AddChild or decoded from a tree document (see Decode). Every node has
// a kind, a 1-based line, ordered children and a back-reference to its
// parent. Parent links are set only while building; rules never mutate a
// tree.
package syntax

// Node is a single element of a parsed source file.
type Node struct {
	Kind     Kind
	Line     int
	Text     string // token text; set for identifiers
	children []*Node
	parent   *Node
}

// New creates a detached node.
func New(kind Kind, line int) *Node {
	return &Node{Kind: kind, Line: line}
}

// Ident creates an identifier node.
func Ident(line int, text string) *Node {
	return &Node{Kind: KindIdentifier, Line: line, Text: text}
}

// AddChild appends children and links them to n. It returns n so builders
// can be chained. Nil children are ignored.
func (n *Node) AddChild(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the ordered children of n.
// The returned slice must not be modified.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Is reports whether n is non-nil and of the given kind.
func (n *Node) Is(kind Kind) bool {
	return n != nil && n.Kind == kind
}

// FirstChild returns the first direct child of the given kind.
func (n *Node) FirstChild(kind Kind) *Node {
	for _, c := range n.Children() {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOf returns all direct children of the given kind, in order.
func (n *Node) ChildrenOf(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Ancestor returns the nearest proper ancestor whose kind is one of kinds.
func (n *Node) Ancestor(kinds ...Kind) *Node {
	for p := n.Parent(); p != nil; p = p.parent {
		for _, k := range kinds {
			if p.Kind == k {
				return p
			}
		}
	}
	return nil
}

// Name returns the declared simple name of a class, field or method
// declaration: the text of its first direct identifier child.
func (n *Node) Name() string {
	if ident := n.FirstChild(KindIdentifier); ident != nil {
		return ident.Text
	}
	return ""
}

// Walk traverses the tree rooted at n depth-first in pre-order and calls fn
// for each node. If fn returns false, the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) bool {
		total++
		return true
	})
	return total
}
