// Package render implements the convenience renderer driver: it walks a
// type graph, computes per-namespace name assignments, and calls a
// target's Strategy hooks in dependency order to produce an ordered
// sequence of source lines.
package render

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/rope"
)

// Result is everything a render call returns: the line sequence, the
// target's file extension, and a canonical file-name stem derived from
// the single top-level's name.
type Result struct {
	Lines     []string
	Extension string
	Stem      string
}

// Render runs all five phases against g using s, returning the finished
// line sequence or one of the fatal core errors.
func Render(g *ir.Graph, s Strategy) (*Result, error) {
	nt := buildNameTable(g, s)
	c := rope.NewContext(s.IndentUnit())

	// Phase 2: header.
	s.EmitHeader(c, g)

	// Phase 3: prelude.
	s.EmitPrelude(c, g, nt)

	// Phase 4: body, in dependency-respecting or graph-insertion order.
	order := bodyOrder(g, s.NeedsTypeDeclarationBeforeUse())
	policy := s.BlankLinePolicy()
	for i, t := range order {
		c.Separate(policy, i)
		var err error
		switch t.Kind {
		case ir.Class:
			err = s.EmitClass(c, t, nt)
		case ir.Enum:
			err = s.EmitEnum(c, t, nt)
		case ir.Union:
			err = s.EmitUnion(c, t, nt)
		}
		if err != nil {
			return nil, err
		}
	}

	// Phase 5: top-levels that are not themselves a named class/enum/union.
	namedSet := make(map[*ir.Type]bool, len(g.Named))
	for _, t := range g.Named {
		namedSet[t] = true
	}
	for _, t := range g.TopLevels {
		if namedSet[t] {
			continue
		}
		c.Separate(policy, len(order))
		if err := s.EmitTopLevel(c, t, nt); err != nil {
			return nil, err
		}
	}

	return &Result{
		Lines:     c.Lines(),
		Extension: s.FileExtension(),
		Stem:      s.FileStem(g, nt),
	}, nil
}
