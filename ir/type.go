package ir

// Type is a node in the type graph. Identity is the pointer itself.
// Composite kinds carry exactly one of the body fields below; primitive
// kinds carry none.
type Type struct {
	Kind Kind

	// id is the node's index in Graph.Named, set by Graph.walk when the
	// node is first discovered; it is not a content hash.
	id int

	ProposedName string
	Description  string
	TopLevel     bool

	Items   *Type      // Array
	Values  *Type      // Map
	Props   []Property // Class, insertion order is the emission order
	Cases   []string   // Enum, ordered, unique
	Members []*Type    // Union, ordered
}

// Property is one named, typed field of a Class, in declaration order.
type Property struct {
	Name        string // raw JSON key, preserved verbatim for the serializer contract
	Type        *Type
	Optional    bool
	Description string
}

// Nullable reports whether t is a union of exactly one non-null member and
// one null member. The target renders this as an optional rather than a
// sum type.
func (t *Type) Nullable() (inner *Type, ok bool) {
	if t.Kind != Union || len(t.Members) != 2 {
		return nil, false
	}
	var nonNull *Type
	var sawNull bool
	for _, m := range t.Members {
		if m.Kind == Null {
			sawNull = true
		} else {
			nonNull = m
		}
	}
	if sawNull && nonNull != nil {
		return nonNull, true
	}
	return nil, false
}

// IsImplicitUnion reports whether t is a union that is not a Nullable
// (its members are not inspected further), meaning it needs the union's own explicit-sum-vs-implicit
// decision from the target hooks, not the nullable shortcut.
func (t *Type) IsImplicitUnion() bool {
	if t.Kind != Union {
		return false
	}
	if _, ok := t.Nullable(); ok {
		return false
	}
	return true
}
