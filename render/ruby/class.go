package ruby

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/render"
	"sourcelike.dev/typegen/rope"
)

// EmitHeader writes the file-level boilerplate every generated file
// shares: the frozen-string-literal magic comment and the requires the
// body actually needs. "dry/types" is unconditional, since every file
// opens a Types module; "dry/struct" and "json" are only pulled in when
// the graph has at least one Class, since EmitClass is the only hook
// that defines a Dry::Struct subclass or a to_json/from_json pair.
func (s *Strategy) EmitHeader(c *rope.Context, g *ir.Graph) {
	c.EmitLine(rope.Lit("# frozen_string_literal: true"))
	c.EmitRaw("")

	var imp render.Imports
	imp.Add("dry/types")
	if g.ClassCount() > 0 {
		imp.Add("dry/struct")
		imp.Add("json")
	}
	for _, path := range imp.List {
		c.EmitLine(rope.Lit(`require "`+path+`"`))
	}
}

// EmitPrelude opens the shared Types module every Types:: reference in
// the body resolves against. Ruby lets later declarations reopen this
// same module (each enum adds its own constant there), so this is the
// only place the module's own `include Dry.Types()` needs stating.
func (s *Strategy) EmitPrelude(c *rope.Context, g *ir.Graph, nt *render.NameTable) {
	c.EmitBlock(
		[]rope.Frag{rope.Lit("module Types")},
		func() { c.EmitLine(rope.Lit("include Dry.Types()")) },
		[]rope.Frag{rope.Lit("end")},
	)
}

// EmitClass renders one Class node as a Dry::Struct subclass plus its
// from_dynamic/to_dynamic converter pair and the from_json/to_json
// convenience wrappers built on top of them.
func (s *Strategy) EmitClass(c *rope.Context, t *ir.Type, nt *render.NameTable) error {
	if t.Description != "" {
		c.EmitCommentLines([]string{t.Description}, "# ", "", "")
	}
	c.EmitLine(rope.Lit("class "), rope.Ref(nt.TypeName(t)), rope.Lit(" < Dry::Struct"))
	c.Indent(func() {
		render.ForEachClassProperty(c, t, render.PropertyBlankLinesAroundDescribed, func(i int, p ir.Property) {
			if p.Description != "" {
				c.EmitCommentLines([]string{p.Description}, "# ", "", "")
			}
			if warning, ok := laxityWarning(p.Type); ok {
				c.EmitCommentLines([]string{warning}, "# ", "", "")
			}
			c.EmitLine(
				rope.Lit("attribute :"), rope.Ref(nt.PropertyName(t, i)), rope.Lit(", "),
				s.TypeExpr(p.Type, nt, p.Optional),
			)
		})

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def self.from_dynamic(d)"))
		c.Indent(func() {
			c.EmitLine(rope.Lit("new("))
			c.Indent(func() {
				for i, p := range t.Props {
					key := rope.Seq(rope.Lit(`d["`), rope.Lit(p.Name), rope.Lit(`"]`))
					c.EmitLine(
						rope.Ref(nt.PropertyName(t, i)), rope.Lit(": "),
						s.FromDynamic(p.Type, key, p.Optional, nt), rope.Lit(","),
					)
				}
			})
			c.EmitLine(rope.Lit(")"))
		})
		c.EmitLine(rope.Lit("end"))

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def self.from_json(json)"))
		c.Indent(func() {
			c.EmitLine(rope.Lit("from_dynamic(JSON.parse(json))"))
		})
		c.EmitLine(rope.Lit("end"))

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def to_dynamic"))
		c.Indent(func() {
			c.EmitLine(rope.Lit("{"))
			c.Indent(func() {
				for i, p := range t.Props {
					ivar := rope.Seq(rope.Lit("@"), rope.Ref(nt.PropertyName(t, i)))
					c.EmitLine(
						rope.Lit(`"`), rope.Lit(p.Name), rope.Lit(`" => `),
						s.ToDynamic(p.Type, ivar, p.Optional, nt), rope.Lit(","),
					)
				}
			})
			c.EmitLine(rope.Lit("}"))
		})
		c.EmitLine(rope.Lit("end"))

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def to_json(*a)"))
		c.Indent(func() {
			c.EmitLine(rope.Lit("to_dynamic.to_json(*a)"))
		})
		c.EmitLine(rope.Lit("end"))
	})
	c.EmitLine(rope.Lit("end"))
	return nil
}

// laxityWarning reports the inline warning comment a property's type
// earns when the schema left it effectively unconstrained: "any" type
// with no further shape, or a type that can only ever be null. Both
// render without error (attribute still gets a dry-types expression
// from TypeExpr), but the looseness is worth flagging at the call site
// rather than silently passed through.
func laxityWarning(t *ir.Type) (string, bool) {
	if inner, ok := t.Nullable(); ok {
		t = inner
	}
	switch t.Kind {
	case ir.Any:
		return "warning: schema left this property unconstrained (\"any\" type)", true
	case ir.Null:
		return "warning: schema declares this property as always null", true
	}
	return "", false
}

// EmitTopLevel renders a top-level that is not itself a named
// class/enum/union (a bare array or map at the document root) as a
// module-level pair of conversion methods, since Ruby has no file-scope
// type alias to hang Types:: usage on.
func (s *Strategy) EmitTopLevel(c *rope.Context, t *ir.Type, nt *render.NameTable) error {
	stem := rope.Ref(nt.TypeName(t))
	c.EmitLine(rope.Lit("module "), stem)
	c.Indent(func() {
		c.EmitLine(rope.Lit("def self.from_dynamic(d)"))
		c.Indent(func() { c.EmitLine(s.FromDynamic(t, rope.Lit("d"), false, nt)) })
		c.EmitLine(rope.Lit("end"))

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("def self.to_dynamic(o)"))
		c.Indent(func() { c.EmitLine(s.ToDynamic(t, rope.Lit("o"), false, nt)) })
		c.EmitLine(rope.Lit("end"))
	})
	c.EmitLine(rope.Lit("end"))
	return nil
}
