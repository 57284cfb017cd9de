package syntax

// QualifiedName flattens an identifier or a left-associative dotted chain
// (A.B.C) into its canonical string. Any other node yields "".
//
// A QualifiedNameExpr has two operands: the left one is an identifier or a
// further chain, the right one is an identifier. Depth strictly decreases
// going left, so the recursion terminates on finite trees.
func QualifiedName(n *Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindIdentifier:
		return n.Text
	case KindQualifiedNameExpr:
		left, right := operands(n)
		if left == nil || right == nil {
			return ""
		}
		l := QualifiedName(left)
		r := ""
		if right.Kind == KindIdentifier {
			r = right.Text
		}
		if l == "" || r == "" {
			return ""
		}
		return l + "." + r
	default:
		return ""
	}
}

// SimpleName returns the last segment of an identifier or dotted chain.
func SimpleName(n *Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindIdentifier:
		return n.Text
	case KindQualifiedNameExpr:
		_, right := operands(n)
		return SimpleName(right)
	default:
		return ""
	}
}

// operands returns the first two name-bearing children of a dotted chain.
func operands(n *Node) (left, right *Node) {
	for _, c := range n.children {
		if c.Kind != KindIdentifier && c.Kind != KindQualifiedNameExpr {
			continue
		}
		if left == nil {
			left = c
			continue
		}
		return left, c
	}
	return left, nil
}
