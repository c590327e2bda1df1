package ruby

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/render"
	"sourcelike.dev/typegen/rope"
)

// jsonGuardClass returns the Ruby class (or comma-joined classes) that a
// parsed-JSON value belonging to m's shape is an instance of: the guard
// a `case d; when ...` arm in an explicit sum's from_dynamic switches on.
func jsonGuardClass(m *ir.Type) string {
	switch m.Kind {
	case ir.Null:
		return "NilClass"
	case ir.Bool:
		return "TrueClass, FalseClass"
	case ir.Int, ir.Double:
		return "Numeric"
	case ir.String, ir.Enum:
		return "String"
	case ir.Array:
		return "Array"
	case ir.Map, ir.Class, ir.Union:
		return "Hash"
	default:
		return "Object"
	}
}

// EmitUnion renders a non-nullable, multi-member union as an explicit
// sum: one wrapper class holding @value, a from_dynamic that picks the
// member whose JSON-shape guard matches, and a to_dynamic that defers to
// the member's own converter when its domain representation is itself
// an object with one (a Class or a nested Union). Two members sharing
// the same JSON-shape guard at this depth make the union unresolvable:
// from_dynamic would have no way to tell them apart.
func (s *Strategy) EmitUnion(c *rope.Context, t *ir.Type, nt *render.NameTable) error {
	byGuard := map[string]bool{}
	for _, m := range t.Members {
		guard := jsonGuardClass(m)
		if byGuard[guard] {
			return &render.ErrUnresolvableUnion{Union: nt.TypeName(t).Raw(), Guard: guard}
		}
		byGuard[guard] = true
	}

	if t.Description != "" {
		c.EmitCommentLines([]string{t.Description}, "# ", "", "")
	}
	c.EmitLine(rope.Lit("class "), rope.Ref(nt.TypeName(t)))
	c.Indent(func() {
		c.EmitLine(rope.Lit("attr_reader :value"))
		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def initialize(value)"))
		c.Indent(func() { c.EmitLine(rope.Lit("@value = value")) })
		c.EmitLine(rope.Lit("end"))

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def self.from_dynamic(d)"))
		c.Indent(func() {
			c.EmitLine(rope.Lit("case d"))
			for _, m := range t.Members {
				c.EmitLine(rope.Lit("when "), rope.Lit(jsonGuardClass(m)))
				c.Indent(func() {
					c.EmitLine(rope.Lit("new("), s.FromDynamic(m, rope.Lit("d"), false, nt), rope.Lit(")"))
				})
			}
			c.EmitLine(rope.Lit("else"))
			c.Indent(func() {
				c.EmitLine(rope.Lit(`raise TypeError, "unexpected type for `), rope.Ref(nt.TypeName(t)), rope.Lit(`: #{d.class}"`))
			})
			c.EmitLine(rope.Lit("end"))
		})
		c.EmitLine(rope.Lit("end"))

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def to_dynamic"))
		c.Indent(func() { s.emitUnionToDynamicBody(c, t, nt) })
		c.EmitLine(rope.Lit("end"))
	})
	c.EmitLine(rope.Lit("end"))
	return nil
}

func (s *Strategy) emitUnionToDynamicBody(c *rope.Context, t *ir.Type, nt *render.NameTable) {
	var objectMembers []*ir.Type
	for _, m := range t.Members {
		if m.Kind == ir.Class || m.Kind == ir.Union {
			objectMembers = append(objectMembers, m)
		}
	}
	if len(objectMembers) == 0 {
		c.EmitLine(rope.Lit("@value"))
		return
	}
	c.EmitLine(rope.Lit("case @value"))
	for _, m := range objectMembers {
		c.EmitLine(rope.Lit("when "), rope.Ref(nt.TypeName(m)))
		c.Indent(func() {
			c.EmitLine(s.ToDynamic(m, rope.Lit("@value"), false, nt))
		})
	}
	c.EmitLine(rope.Lit("else"))
	c.Indent(func() { c.EmitLine(rope.Lit("@value")) })
	c.EmitLine(rope.Lit("end"))
}
