package syntax

// Kind tags the variant of a Node.
type Kind int

// Node kinds produced by the upstream parser.
const (
	KindOther Kind = iota
	KindClassDeclaration
	KindFieldDeclaration
	KindMethodDeclaration
	KindModifierList
	KindAnnotationUse
	KindAnnotationMemberValuePair
	KindIdentifier
	KindQualifiedNameExpr
	KindArrayTypeExpr
	KindTypeRef
	KindMethodCall
	KindBlock      // local scope: method bodies, initializers, statement lists
	KindObjectBody // member list of a class
)

var kindNames = [...]string{
	KindOther:                     "Other",
	KindClassDeclaration:          "ClassDeclaration",
	KindFieldDeclaration:          "FieldDeclaration",
	KindMethodDeclaration:         "MethodDeclaration",
	KindModifierList:              "ModifierList",
	KindAnnotationUse:             "AnnotationUse",
	KindAnnotationMemberValuePair: "AnnotationMemberValuePair",
	KindIdentifier:                "Identifier",
	KindQualifiedNameExpr:         "QualifiedNameExpr",
	KindArrayTypeExpr:             "ArrayTypeExpr",
	KindTypeRef:                   "TypeRef",
	KindMethodCall:                "MethodCall",
	KindBlock:                     "Block",
	KindObjectBody:                "ObjectBody",
}

// String returns the document name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindOther]
	}
	return kindNames[k]
}

// ParseKind maps a document kind name to a Kind.
// Unknown names map to KindOther and ok is false.
func ParseKind(name string) (kind Kind, ok bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindOther, false
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}
