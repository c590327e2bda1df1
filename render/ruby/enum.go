package ruby

import (
	"strconv"

	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/render"
	"sourcelike.dev/typegen/rope"
)

// EmitEnum renders one Enum node as two consecutive blocks: a value-table
// module whose constants carry the original JSON strings, and a
// reopening of the shared Types module that declares the dry-types enum
// built from that table.
func (s *Strategy) EmitEnum(c *rope.Context, t *ir.Type, nt *render.NameTable) error {
	valuesModule := rope.Seq(rope.Ref(nt.TypeName(t)), rope.Lit("Values"))

	if t.Description != "" {
		c.EmitCommentLines([]string{t.Description}, "# ", "", "")
	}
	c.EmitLine(rope.Lit("module "), valuesModule)
	c.Indent(func() {
		rows := make([][]rope.Frag, len(t.Cases))
		for i, raw := range t.Cases {
			rows[i] = []rope.Frag{
				rope.Ref(nt.EnumCaseName(t, i)),
				rope.Lit("="),
				rope.Lit(strconv.Quote(raw)),
			}
		}
		c.EmitTable(rows)

		c.EnsureBlankLine()
		c.EmitLine(rope.Lit("ALL = ["), caseRefList(nt, t), rope.Lit("].freeze"))
	})
	c.EmitLine(rope.Lit("end"))

	c.EnsureBlankLine()
	c.EmitLine(rope.Lit("module Types"))
	c.Indent(func() {
		c.EmitLine(rope.Ref(nt.TypeName(t)), rope.Lit(" = Types::Strict::String.enum(*"), valuesModule, rope.Lit("::ALL)"))
	})
	c.EmitLine(rope.Lit("end"))
	return nil
}

func caseRefList(nt *render.NameTable, t *ir.Type) rope.Frag {
	frags := make([]rope.Frag, len(t.Cases))
	for i := range t.Cases {
		frags[i] = rope.Ref(nt.EnumCaseName(t, i))
	}
	return rope.Join(", ", frags...)
}
