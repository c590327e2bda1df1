package ruby

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/render"
	"sourcelike.dev/typegen/rope"
)

// TypeExpr synthesizes the dry-types expression for t. optional appends
// ".optional" at the outermost layer only; a nested occurrence (an
// array's element type, say) is never itself optional without being a
// Nullable union, which this function unwraps directly.
func (s *Strategy) TypeExpr(t *ir.Type, nt *render.NameTable, optional bool) rope.Frag {
	if inner, ok := t.Nullable(); ok {
		return s.TypeExpr(inner, nt, true)
	}
	base := s.typeExprInner(t, nt)
	if optional {
		return rope.Seq(base, rope.Lit(".optional"))
	}
	return base
}

func (s *Strategy) typeExprInner(t *ir.Type, nt *render.NameTable) rope.Frag {
	switch t.Kind {
	case ir.Any:
		return rope.Lit("Types::Any")
	case ir.Null:
		return rope.Lit("Types::Nil")
	case ir.Bool:
		return rope.Lit("Types::Bool")
	case ir.Int:
		return rope.Lit("Types::Int")
	case ir.Double:
		return rope.Lit("Types::Decimal")
	case ir.String:
		return rope.Lit("Types::String")
	case ir.Array:
		return rope.Seq(rope.Lit("Types.Array("), s.elementTypeExpr(t.Items, nt), rope.Lit(")"))
	case ir.Map:
		return rope.Seq(rope.Lit("Types::Hash.map(Types::String, "), s.elementTypeExpr(t.Values, nt), rope.Lit(")"))
	case ir.Class:
		return rope.Seq(rope.Lit("Types.Instance("), rope.Ref(nt.TypeName(t)), rope.Lit(")"))
	case ir.Enum:
		return rope.Seq(rope.Lit("Types::"), rope.Ref(nt.TypeName(t)))
	case ir.Union:
		return rope.Seq(rope.Lit("Types.Instance("), rope.Ref(nt.TypeName(t)), rope.Lit(")"))
	default:
		return rope.Lit("Types::Any")
	}
}

// elementTypeExpr is typeExprInner without the dry-types wrapping that
// only applies to a bare attribute's own declared type (Instance for a
// standalone class reference reads the same inside Types.Array, so this
// is currently just an alias kept distinct for the places the two
// diverge as the target grows).
func (s *Strategy) elementTypeExpr(t *ir.Type, nt *render.NameTable) rope.Frag {
	return s.typeExprInner(t, nt)
}

// MarshalsImplicitly reports whether t's JSON representation and its Ruby
// runtime representation are produced by plain pass-through. Primitives
// and containers-of-implicit are implicit, and so is a Union whose every
// member is. Class is not: it round-trips through
// from_dynamic/to_dynamic. Enum is not implicit
// either, despite representing JSON as a plain string: from_dynamic
// validates membership via Types::X[...], which is not an identity
// expression (see DESIGN.md).
func (s *Strategy) MarshalsImplicitly(t *ir.Type) bool {
	if inner, ok := t.Nullable(); ok {
		return s.MarshalsImplicitly(inner)
	}
	switch t.Kind {
	case ir.Any, ir.Null, ir.Bool, ir.Int, ir.Double, ir.String:
		return true
	case ir.Array:
		return s.MarshalsImplicitly(t.Items)
	case ir.Map:
		return s.MarshalsImplicitly(t.Values)
	case ir.Union:
		for _, m := range t.Members {
			if !s.MarshalsImplicitly(m) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
