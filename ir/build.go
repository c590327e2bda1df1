package ir

// NewAny, NewNull, ... construct primitive leaf nodes. Each call returns a
// fresh node; callers that want sharing (e.g. a single Null reused across
// many unions) may reuse the returned pointer themselves.
func NewAny() *Type    { return &Type{Kind: Any} }
func NewNull() *Type   { return &Type{Kind: Null} }
func NewBool() *Type   { return &Type{Kind: Bool} }
func NewInt() *Type    { return &Type{Kind: Int} }
func NewDouble() *Type { return &Type{Kind: Double} }
func NewString() *Type { return &Type{Kind: String} }

// NewArray builds an array-of-items node.
func NewArray(items *Type) *Type { return &Type{Kind: Array, Items: items} }

// NewMap builds a string-keyed map-of-values node.
func NewMap(values *Type) *Type { return &Type{Kind: Map, Values: values} }

// NewClass builds a named class with properties in declaration order.
// The returned node is not yet registered with a Graph; see NewGraph.
func NewClass(name string, props ...Property) *Type {
	return &Type{Kind: Class, ProposedName: name, Props: props}
}

// NewEnum builds a named enum from its ordered, unique case strings.
func NewEnum(name string, cases ...string) *Type {
	return &Type{Kind: Enum, ProposedName: name, Cases: cases}
}

// NewUnion builds a named union from its member set, in declaration order.
func NewUnion(name string, members ...*Type) *Type {
	return &Type{Kind: Union, ProposedName: name, Members: members}
}

// NewNullable is sugar for a two-member union of t and Null: exactly the
// shape Type.Nullable recognizes.
func NewNullable(t *Type) *Type {
	return &Type{Kind: Union, Members: []*Type{t, NewNull()}}
}
