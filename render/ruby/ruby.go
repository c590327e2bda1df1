// Package ruby is the worked-example target: a dry-struct/dry-types
// back end for the renderer core. It is the only concrete Strategy in
// this tree, and the one the bit-exact contracts are written against.
package ruby

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/name"
	"sourcelike.dev/typegen/render"
	"sourcelike.dev/typegen/rope"
)

// keywords is Ruby's reserved-word list, forbidden from both the type
// and class-property namespaces.
var keywords = []string{
	"__ENCODING__", "__LINE__", "__FILE__", "BEGIN", "END", "alias", "and",
	"begin", "break", "case", "class", "def", "defined?", "do", "else",
	"elsif", "end", "ensure", "false", "for", "if", "in", "module", "next",
	"nil", "not", "or", "redo", "rescue", "retry", "return", "self",
	"super", "then", "true", "undef", "unless", "until", "when", "while",
	"yield",
}

// Strategy is the dry-struct/dry-types render.Strategy.
type Strategy struct {
	types *name.Namer
}

// New builds a fresh Strategy. One Strategy value belongs to exactly one
// render.Render call; it owns the shared type namer. Every namer it
// builds forbids the Ruby keywords; none of them forbids assigned type names.
func New() *Strategy {
	return &Strategy{
		types: name.NewNamer(name.AcronymAwarePascalCase(name.DefaultAcronyms), name.DefaultLegalizer(), keywords),
	}
}

func (s *Strategy) Types() *name.Namer { return s.types }

func (s *Strategy) NewClassProperties() *name.Namer {
	n := name.NewNamer(name.SnakeCase, name.DefaultLegalizer(), keywords)
	return n
}

func (s *Strategy) NewEnumCases() *name.Namer {
	return name.NewNamer(name.AcronymAwarePascalCase(name.DefaultAcronyms), name.DefaultLegalizer(), keywords)
}

func (s *Strategy) NewUnionMembers() *name.Namer {
	return name.NewNamer(name.AcronymAwarePascalCase(name.DefaultAcronyms), name.DefaultLegalizer(), keywords)
}

func (s *Strategy) Keywords() []string { return keywords }

func (s *Strategy) IndentUnit() string { return "  " }

func (s *Strategy) FileExtension() string { return ".rb" }

func (s *Strategy) BlankLinePolicy() rope.BlankLinePolicy {
	return rope.LeadingAndInterposingBlankLines
}

// NeedsTypeDeclarationBeforeUse is true: a Ruby class body executes its
// attribute macros at load time, so every Types:: constant and every
// referenced class must already exist.
func (s *Strategy) NeedsTypeDeclarationBeforeUse() bool { return true }

// FileStem names the file after the sole top-level type.
func (s *Strategy) FileStem(g *ir.Graph, nt *render.NameTable) string {
	if len(g.TopLevels) == 0 {
		return "top_level"
	}
	return name.SnakeCase(name.SplitWords(nt.TypeName(g.TopLevels[0]).String()))
}
