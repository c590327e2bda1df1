package ruby

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/render"
)

// buildPokedex mirrors the pokedex schema's own property ordering (egg
// precedes weaknesses precedes next_evolution) closely enough to exercise
// the topological body order and the bit-exact conversion contracts.
func buildPokedex(t *testing.T) *ir.Graph {
	egg := ir.NewEnum("Egg", "Never", "Not in Eggs", "2 km", "5 km", "10 km")
	weakness := ir.NewEnum("Weakness", "Normal", "Fire", "Water")
	evolution := ir.NewClass("Evolution", ir.Property{Name: "num", Type: ir.NewString()})

	pokemon := ir.NewClass("Pokemon",
		ir.Property{Name: "id", Type: ir.NewInt()},
		ir.Property{Name: "candy_count", Type: ir.NewNullable(ir.NewInt())},
		ir.Property{Name: "egg", Type: egg},
		ir.Property{Name: "multipliers", Type: ir.NewNullable(ir.NewArray(ir.NewDouble()))},
		ir.Property{Name: "weaknesses", Type: ir.NewArray(weakness)},
		ir.Property{Name: "next_evolution", Type: ir.NewNullable(ir.NewArray(evolution))},
	)
	top := ir.NewClass("TopLevel",
		ir.Property{Name: "pokemon", Type: ir.NewArray(pokemon)},
	)

	g, err := ir.NewGraph(top)
	require.NoError(t, err)
	return g
}

func TestPokedexBodyOrder(t *testing.T) {
	g := buildPokedex(t)
	res, err := render.Render(g, New())
	require.NoError(t, err)
	out := strings.Join(res.Lines, "\n")

	eggIdx := strings.Index(out, "module EggValues")
	weaknessIdx := strings.Index(out, "module WeaknessValues")
	evolutionIdx := strings.Index(out, "class Evolution")
	pokemonIdx := strings.Index(out, "class Pokemon")
	topIdx := strings.Index(out, "class TopLevel")

	require.Greater(t, eggIdx, -1)
	require.Greater(t, weaknessIdx, -1)
	require.Greater(t, evolutionIdx, -1)
	require.Less(t, eggIdx, weaknessIdx, "Egg must be declared before Weakness")
	require.Less(t, weaknessIdx, evolutionIdx, "both enums must be declared before Evolution")
	require.Less(t, evolutionIdx, pokemonIdx, "Evolution must be declared before Pokemon")
	require.Less(t, pokemonIdx, topIdx, "Pokemon must be declared before TopLevel")
}

func TestPokedexBitExactConversions(t *testing.T) {
	g := buildPokedex(t)
	res, err := render.Render(g, New())
	require.NoError(t, err)
	out := strings.Join(res.Lines, "\n")

	require.Contains(t, out, `attribute :next_evolution, Types.Array(Types.Instance(Evolution)).optional`)
	require.Contains(t, out, `next_evolution: d["next_evolution"].nil? ? nil : d["next_evolution"].map { |x| Evolution.from_dynamic(x) },`)
	require.Contains(t, out, `"next_evolution" => @next_evolution.nil? ? nil : @next_evolution.map { |x| x.to_dynamic },`)

	require.Contains(t, out, `id: d["id"],`)
	require.Contains(t, out, `candy_count: d["candy_count"],`)
	require.Contains(t, out, `egg: Types::Egg[d["egg"]],`)
	require.Contains(t, out, `multipliers: d["multipliers"],`)
	require.Contains(t, out, `weaknesses: d["weaknesses"].map { |x| Types::Weakness[x] },`)

	require.Contains(t, out, `"weaknesses" => @weaknesses,`)
}

func TestEnumValueTableAndTypesConstant(t *testing.T) {
	g := buildPokedex(t)
	res, err := render.Render(g, New())
	require.NoError(t, err)
	out := strings.Join(res.Lines, "\n")

	require.Contains(t, out, `Never     = "Never"`)
	require.Contains(t, out, `NotInEggs = "Not in Eggs"`)
	require.Contains(t, out, `The10KM   = "10 km"`)
	require.Contains(t, out, "Egg = Types::Strict::String.enum(*EggValues::ALL)")
}

func TestAnyAndNullPropertiesGetWarningComments(t *testing.T) {
	top := ir.NewClass("Loose",
		ir.Property{Name: "extra", Type: ir.NewAny()},
		ir.Property{Name: "always_null", Type: ir.NewNull()},
		ir.Property{Name: "maybe_extra", Type: ir.NewNullable(ir.NewAny())},
	)
	res, err := render.Render(mustGraph(t, top), New())
	require.NoError(t, err)
	out := strings.Join(res.Lines, "\n")

	require.Contains(t, out, `# warning: schema left this property unconstrained ("any" type)`)
	require.Contains(t, out, `# warning: schema declares this property as always null`)

	extraIdx := strings.Index(out, `# warning: schema left this property unconstrained`)
	attrIdx := strings.Index(out, "attribute :extra,")
	require.Greater(t, extraIdx, -1)
	require.Greater(t, attrIdx, extraIdx)
}

func TestHeaderOmitsStructRequireWhenGraphHasNoClasses(t *testing.T) {
	top := ir.NewEnum("OnlyEnum", "a", "b")
	res, err := render.Render(mustGraph(t, top), New())
	require.NoError(t, err)
	out := strings.Join(res.Lines, "\n")

	require.Contains(t, out, `require "dry/types"`)
	require.NotContains(t, out, `require "dry/struct"`)
	require.NotContains(t, out, `require "json"`)
}

func TestHeaderIncludesStructAndJSONRequiresWhenGraphHasClasses(t *testing.T) {
	g := buildPokedex(t)
	res, err := render.Render(g, New())
	require.NoError(t, err)
	out := strings.Join(res.Lines, "\n")

	require.Contains(t, out, `require "dry/struct"`)
	require.Contains(t, out, `require "json"`)
	require.Contains(t, out, `require "dry/types"`)
}

var (
	fromDynamicKeyPat = regexp.MustCompile(`(\w+): d\[`)
	toDynamicKeyPat   = regexp.MustCompile(`"(\w+)" => `)
)

// classBody returns the source between "class <name>" and the next
// sibling class or enum module declaration, so from_dynamic and
// to_dynamic can be compared for one class at a time.
func classBody(t *testing.T, out, name string) string {
	marker := "class " + name + " < Dry::Struct\n"
	start := strings.Index(out, marker)
	require.Greaterf(t, start, -1, "class %s not found in rendered output", name)
	rest := out[start+len(marker):]
	end := len(rest)
	for _, sibling := range []string{"\nclass ", "\nmodule "} {
		if idx := strings.Index(rest, sibling); idx >= 0 && idx < end {
			end = idx
		}
	}
	return rest[:end]
}

func extractKeys(pat *regexp.Regexp, body string) []string {
	var keys []string
	for _, m := range pat.FindAllStringSubmatch(body, -1) {
		keys = append(keys, m[1])
	}
	return keys
}

// TestFromDynamicToDynamicKeyRoundTrip checks, for every generated class,
// that to_dynamic emits exactly the set of keys from_dynamic reads from
// its input hash. That symmetry is what makes
// TopLevel.from_dynamic(d).to_dynamic reproduce d: each property is
// converted independently in both directions under the same key, so if
// the key sets match for every class in the graph, they match
// transitively for the whole nested structure.
func TestFromDynamicToDynamicKeyRoundTrip(t *testing.T) {
	g := buildPokedex(t)
	res, err := render.Render(g, New())
	require.NoError(t, err)
	out := strings.Join(res.Lines, "\n")

	for _, class := range []string{"Evolution", "Pokemon", "TopLevel"} {
		body := classBody(t, out, class)
		fromKeys := extractKeys(fromDynamicKeyPat, body)
		toKeys := extractKeys(toDynamicKeyPat, body)
		require.NotEmpty(t, fromKeys, "class %s: expected at least one from_dynamic key", class)
		require.ElementsMatch(t, fromKeys, toKeys,
			"class %s: from_dynamic(d).to_dynamic must read back exactly the keys it wrote", class)
	}
}

func TestUnresolvableUnionFails(t *testing.T) {
	s := New()
	bad := ir.NewUnion("Confused", ir.NewString(), ir.NewString())
	_, err := render.Render(mustGraph(t, ir.NewClass("Top", ir.Property{Name: "x", Type: bad})), s)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unresolvable union")
}

func mustGraph(t *testing.T, top *ir.Type) *ir.Graph {
	g, err := ir.NewGraph(top)
	require.NoError(t, err)
	return g
}
