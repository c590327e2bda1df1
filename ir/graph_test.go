package ir

import (
	"errors"
	"testing"
)

func TestNewGraphDiscoversNamedInOrder(t *testing.T) {
	evo := NewClass("Evolution", Property{Name: "num", Type: NewString()})
	egg := NewEnum("Egg", "Not in Eggs", "2 km", "10 km")
	pokemon := NewClass("Pokemon",
		Property{Name: "id", Type: NewInt()},
		Property{Name: "egg", Type: egg},
		Property{Name: "next_evolution", Type: NewNullable(NewArray(evo)), Optional: true},
	)
	top := NewClass("TopLevel", Property{Name: "pokemon", Type: NewArray(pokemon)})

	g, err := NewGraph(top)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	want := []string{"TopLevel", "Pokemon", "Egg", "Evolution"}
	if len(g.Named) != len(want) {
		t.Fatalf("got %d named types, want %d: %v", len(g.Named), len(want), g.Named)
	}
	for i, name := range want {
		if g.Named[i].ProposedName != name {
			t.Errorf("Named[%d] = %q, want %q", i, g.Named[i].ProposedName, name)
		}
	}
}

func TestNewGraphRejectsNullProperty(t *testing.T) {
	bad := NewClass("Bad", Property{Name: "x", Type: NewNull()})
	if _, err := NewGraph(bad); err == nil {
		t.Fatal("expected error for null-typed property, got nil")
	}
}

func TestNewGraphRejectsDuplicateProperty(t *testing.T) {
	bad := NewClass("Bad",
		Property{Name: "x", Type: NewInt()},
		Property{Name: "x", Type: NewString()},
	)
	if _, err := NewGraph(bad); err == nil {
		t.Fatal("expected error for duplicate property name, got nil")
	}
}

func TestNewGraphRejectsDuplicateEnumCase(t *testing.T) {
	bad := NewEnum("Bad", "a", "a")
	top := NewClass("Top", Property{Name: "b", Type: bad})
	if _, err := NewGraph(top); err == nil {
		t.Fatal("expected error for duplicate enum case, got nil")
	}
}

func TestSelfReferencingArrayRejectedAsCycle(t *testing.T) {
	loop := NewArray(nil)
	loop.Items = loop
	top := NewClass("Top", Property{Name: "x", Type: loop})

	_, err := NewGraph(top)
	if err == nil {
		t.Fatal("expected a CycleError for an array that wraps itself with no named boundary")
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
}

func TestArrayMapMutualCycleRejected(t *testing.T) {
	arr := NewArray(nil)
	m := NewMap(nil)
	arr.Items = m
	m.Values = arr
	top := NewClass("Top", Property{Name: "x", Type: arr})

	_, err := NewGraph(top)
	if err == nil {
		t.Fatal("expected a CycleError for an array/map pair that cycles without a named boundary")
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
}

func TestSelfReferencingClassAllowed(t *testing.T) {
	node := NewClass("Node")
	node.Props = []Property{
		{Name: "children", Type: NewArray(node)},
	}
	if _, err := NewGraph(node); err != nil {
		t.Fatalf("self-referencing class across one named boundary should be allowed: %v", err)
	}
}

func TestNullableDetection(t *testing.T) {
	n := NewNullable(NewString())
	inner, ok := n.Nullable()
	if !ok || inner.Kind != String {
		t.Fatalf("expected nullable string, got %v %v", inner, ok)
	}
	u := NewUnion("U", NewString(), NewInt())
	if _, ok := u.Nullable(); ok {
		t.Fatal("two non-null members must not be reported nullable")
	}
}
