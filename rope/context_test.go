package rope

import (
	"testing"

	"github.com/stretchr/testify/require"
	"sourcelike.dev/typegen/name"
)

func TestEmitLineResolvesNameAfterSeal(t *testing.T) {
	nr := name.NewNamer(name.PascalCase, name.DefaultLegalizer(), nil)
	n := nr.NewName("pokemon", 0)
	nr.Seal()

	c := NewContext("  ")
	c.EmitLine(Lit("class "), Ref(n), Lit(" {"))
	require.Equal(t, []string{"class Pokemon {"}, c.Lines())
}

func TestEmitLinePanicsOnUnsealedName(t *testing.T) {
	nr := name.NewNamer(name.PascalCase, name.DefaultLegalizer(), nil)
	n := nr.NewName("pokemon", 0)
	c := NewContext("  ")
	require.Panics(t, func() { c.EmitLine(Ref(n)) })
}

func TestIndentAndBlock(t *testing.T) {
	c := NewContext("  ")
	c.EmitBlock([]Frag{Lit("class Foo")}, func() {
		c.EmitLine(Lit("attr_accessor :bar"))
	}, []Frag{Lit("end")})
	require.Equal(t, []string{
		"class Foo",
		"  attr_accessor :bar",
		"end",
	}, c.Lines())
}

func TestEnsureBlankLineIsIdempotent(t *testing.T) {
	c := NewContext("  ")
	c.EmitLine(Lit("a"))
	c.EnsureBlankLine()
	c.EnsureBlankLine()
	c.EmitLine(Lit("b"))
	require.Equal(t, []string{"a", "", "b"}, c.Lines())
}

func TestEmitTableAlignsColumns(t *testing.T) {
	c := NewContext("  ")
	c.EmitTable([][]Frag{
		{Lit("Egg"), Lit("EggNotInEggs"), Lit("\"Not in Eggs\"")},
		{Lit("Egg"), Lit("Egg2KM"), Lit("\"2 km\"")},
	})
	lines := c.Lines()
	require.Len(t, lines, 2)
	// The second column must be padded to the widest cell in that column.
	require.Equal(t, `Egg EggNotInEggs "Not in Eggs"`, lines[0])
	require.Equal(t, `Egg Egg2KM       "2 km"`, lines[1])
}

func TestEmitCommentLines(t *testing.T) {
	c := NewContext("  ")
	c.EmitCommentLines([]string{"Pokemon represents a single entry.", ""}, "# ", "", "")
	require.Equal(t, []string{"# Pokemon represents a single entry.", ""}, c.Lines())
}
