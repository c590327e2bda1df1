package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const projectYAML = `
name: pokedex
target: ruby
out: gen
schemas:
  - name: pokemon
    file: schemas/pokemon.json
`

func TestReadProject(t *testing.T) {
	p, err := ReadProject(strings.NewReader(projectYAML), "/work/typegen.yaml")
	require.NoError(t, err)
	require.Equal(t, "pokedex", p.Name)
	require.Equal(t, "ruby", p.Target)
	require.Equal(t, "/work", p.Dir)
	require.Len(t, p.Sources, 1)
	require.Equal(t, "/work/schemas/pokemon.json", p.Path(p.Sources[0]))
}

func TestFilterSourcesUnknownName(t *testing.T) {
	p, err := ReadProject(strings.NewReader(projectYAML), "/work/typegen.yaml")
	require.NoError(t, err)
	_, err = p.FilterSources("missing")
	require.Error(t, err)
}

func TestFilterSourcesEmptyReturnsAll(t *testing.T) {
	p, err := ReadProject(strings.NewReader(projectYAML), "/work/typegen.yaml")
	require.NoError(t, err)
	got, err := p.FilterSources()
	require.NoError(t, err)
	require.Equal(t, p.Sources, got)
}
