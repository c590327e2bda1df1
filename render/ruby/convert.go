package ruby

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/render"
	"sourcelike.dev/typegen/rope"
)

// FromDynamic synthesizes the expression that turns expr (a parsed-JSON
// value) into t's Ruby runtime representation. optional marks that expr
// may be nil at this position, either because the enclosing class
// property is declared optional, or because t itself is a nullable
// union, in which case this function forces the guard on regardless of
// what the caller passed.
func (s *Strategy) FromDynamic(t *ir.Type, expr rope.Frag, optional bool, nt *render.NameTable) rope.Frag {
	if inner, ok := t.Nullable(); ok {
		return s.FromDynamic(inner, expr, true, nt)
	}
	if s.MarshalsImplicitly(t) {
		return expr
	}
	switch t.Kind {
	case ir.Class:
		call := rope.Seq(rope.Ref(nt.TypeName(t)), rope.Lit(".from_dynamic("), expr, rope.Lit(")"))
		return nilGuard(optional, expr, call)
	case ir.Union:
		call := rope.Seq(rope.Ref(nt.TypeName(t)), rope.Lit(".from_dynamic("), expr, rope.Lit(")"))
		return nilGuard(optional, expr, call)
	case ir.Enum:
		call := rope.Seq(rope.Lit("Types::"), rope.Ref(nt.TypeName(t)), rope.Lit("["), expr, rope.Lit("]"))
		return nilGuard(optional, expr, call)
	case ir.Array:
		mapped := rope.Seq(expr, rope.Lit(".map { |x| "), s.FromDynamic(t.Items, rope.Lit("x"), false, nt), rope.Lit(" }"))
		return nilGuard(optional, expr, mapped)
	case ir.Map:
		mapped := rope.Seq(expr, rope.Lit(".transform_values { |v| "), s.FromDynamic(t.Values, rope.Lit("v"), false, nt), rope.Lit(" }"))
		return nilGuard(optional, expr, mapped)
	default:
		return expr
	}
}

// ToDynamic is FromDynamic's inverse: Ruby runtime representation back to
// a parsed-JSON-shaped value.
func (s *Strategy) ToDynamic(t *ir.Type, expr rope.Frag, optional bool, nt *render.NameTable) rope.Frag {
	if inner, ok := t.Nullable(); ok {
		return s.ToDynamic(inner, expr, true, nt)
	}
	if s.MarshalsImplicitly(t) {
		return expr
	}
	switch t.Kind {
	case ir.Class:
		call := rope.Seq(expr, rope.Lit(".to_dynamic"))
		return nilGuard(optional, expr, call)
	case ir.Union:
		call := rope.Seq(expr, rope.Lit(".to_dynamic"))
		return nilGuard(optional, expr, call)
	case ir.Enum:
		// The stored value already is the JSON string; to_dynamic is the
		// identity, so no nil guard is needed either.
		return expr
	case ir.Array:
		if elemIsIdentity(t.Items) {
			return expr
		}
		mapped := rope.Seq(expr, rope.Lit(".map { |x| "), s.ToDynamic(t.Items, rope.Lit("x"), false, nt), rope.Lit(" }"))
		return nilGuard(optional, expr, mapped)
	case ir.Map:
		if elemIsIdentity(t.Values) {
			return expr
		}
		mapped := rope.Seq(expr, rope.Lit(".transform_values { |v| "), s.ToDynamic(t.Values, rope.Lit("v"), false, nt), rope.Lit(" }"))
		return nilGuard(optional, expr, mapped)
	default:
		return expr
	}
}

// elemIsIdentity reports whether ToDynamic(t, x) is textually just x.
// True for an enum element, whose stored representation already is its
// JSON form, so a containing array or map skips the otherwise-pointless
// .map { |x| x }.
func elemIsIdentity(t *ir.Type) bool {
	if inner, ok := t.Nullable(); ok {
		return elemIsIdentity(inner)
	}
	return t.Kind == ir.Enum
}

func nilGuard(optional bool, expr, value rope.Frag) rope.Frag {
	if !optional {
		return value
	}
	return rope.Seq(expr, rope.Lit(".nil? ? nil : "), value)
}
