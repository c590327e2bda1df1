package name

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitWordsAcronymBoundary(t *testing.T) {
	require.Equal(t, []string{"HTTP", "Server"}, SplitWords("HTTPServer"))
	require.Equal(t, []string{"next", "Evolution"}, SplitWords("nextEvolution"))
	require.Equal(t, []string{"next", "evolution"}, SplitWords("next_evolution"))
	require.Equal(t, []string{"empty"}, SplitWords("___"))
}

func TestEggEnumCasesAreStableAndDisjoint(t *testing.T) {
	nr := NewNamer(PascalCase, DefaultLegalizer(), nil)
	tenKm := nr.NewName("10 km", 0)
	notInEggs := nr.NewName("Not in Eggs", 1)
	twoKm := nr.NewName("2 km", 2)
	nr.Seal()

	require.True(t, nr.Sealed())
	names := []string{tenKm.String(), notInEggs.String(), twoKm.String()}
	require.Len(t, dedup(names), 3, "names must be pairwise disjoint: %v", names)
	for _, n := range names {
		require.NotEmpty(t, n)
		require.Regexp(t, `^[A-Za-z_][A-Za-z0-9_]*$`, n)
	}
	require.Equal(t, "NotInEggs", notInEggs.String())
}

func TestAcronymAwarePascalCaseMatchesNamingScenarios(t *testing.T) {
	nr := NewNamer(AcronymAwarePascalCase(DefaultAcronyms), DefaultLegalizer(), nil)
	tenKm := nr.NewName("10 km", 0)
	notInEggs := nr.NewName("Not in Eggs", 1)
	twoKm := nr.NewName("2 km", 2)
	nr.Seal()

	require.Equal(t, "The10KM", tenKm.String())
	require.Equal(t, "NotInEggs", notInEggs.String())
	require.Equal(t, "The2KM", twoKm.String())
}

func TestReservedWordIsDisambiguated(t *testing.T) {
	nr := NewNamer(SnakeCase, DefaultLegalizer(), []string{"class"})
	h := nr.NewName("class", 0)
	nr.Seal()
	require.NotEqual(t, "class", h.String())
	require.NotContains(t, []string{"class"}, h.String())
}

func TestCollidingProposedNamesAreDisambiguatedByGraphOrder(t *testing.T) {
	nr := NewNamer(PascalCase, DefaultLegalizer(), nil)
	first := nr.NewName("foo bar", 0)
	second := nr.NewName("Foo Bar", 1)
	nr.Seal()
	require.Equal(t, "FooBar", first.String())
	require.Equal(t, "FooBar_2", second.String())
}

func TestUnassignedNamePanicsBeforeSeal(t *testing.T) {
	nr := NewNamer(PascalCase, DefaultLegalizer(), nil)
	h := nr.NewName("x", 0)
	require.Panics(t, func() { _ = h.String() })
}

func TestNameStabilityAcrossExtension(t *testing.T) {
	nr := NewNamer(PascalCase, DefaultLegalizer(), nil)
	a := nr.NewName("alpha", 0)
	nr.Seal()
	first := a.String()

	nr2 := NewNamer(PascalCase, DefaultLegalizer(), nil)
	a2 := nr2.NewName("alpha", 0)
	_ = nr2.NewName("beta", 1)
	nr2.Seal()
	require.Equal(t, first, a2.String())
}

func dedup(ss []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
