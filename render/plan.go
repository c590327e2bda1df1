package render

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/name"
	"sourcelike.dev/typegen/rope"
)

// NamerFactory supplies one Namer per logical namespace: types get a
// single shared Namer; class properties, enum cases and union member
// constructors are scoped per class/enum/union, so the factory mints a
// fresh instance for each.
type NamerFactory interface {
	Types() *name.Namer
	NewClassProperties() *name.Namer
	NewEnumCases() *name.Namer
	NewUnionMembers() *name.Namer
}

// Strategy is a target's capability set: one value the driver holds and
// calls hooks on, in place of a subclass-based renderer family. No
// virtual dispatch across a class hierarchy; every target implements
// this one interface.
type Strategy interface {
	NamerFactory

	// Keywords lists the target's reserved words; the types and
	// class-property namers treat them as forbidden.
	Keywords() []string

	IndentUnit() string
	FileExtension() string
	BlankLinePolicy() rope.BlankLinePolicy

	// NeedsTypeDeclarationBeforeUse requests a topological body order
	// (leaves first) instead of plain graph-insertion order.
	NeedsTypeDeclarationBeforeUse() bool

	// Type-directed synthesis. optional marks that the surrounding
	// context already knows the value may be absent (a class property
	// declared optional, or a nullable union's inner type) so the hook
	// does not need to re-wrap it.
	TypeExpr(t *ir.Type, nt *NameTable, optional bool) rope.Frag
	FromDynamic(t *ir.Type, expr rope.Frag, optional bool, nt *NameTable) rope.Frag
	ToDynamic(t *ir.Type, expr rope.Frag, optional bool, nt *NameTable) rope.Frag
	MarshalsImplicitly(t *ir.Type) bool

	// Emission hooks, called in dependency order by the driver.
	EmitHeader(c *rope.Context, g *ir.Graph)
	EmitPrelude(c *rope.Context, g *ir.Graph, nt *NameTable)
	EmitClass(c *rope.Context, t *ir.Type, nt *NameTable) error
	EmitEnum(c *rope.Context, t *ir.Type, nt *NameTable) error
	EmitUnion(c *rope.Context, t *ir.Type, nt *NameTable) error
	EmitTopLevel(c *rope.Context, t *ir.Type, nt *NameTable) error

	// FileStem derives the canonical file-name stem from the single
	// top-level's name.
	FileStem(g *ir.Graph, nt *NameTable) string
}
