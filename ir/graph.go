package ir

import "fmt"

// CycleError is returned when a structural cycle (one that never passes
// through a Class/Enum/Union) is found while walking the graph. Callers
// above this package reclassify it as render.ErrCycleBeyondNamedBoundary
// (see schema.LoadJSONSchema) so the render error taxonomy stays the
// single thing a driver checks against, regardless of which layer
// actually detected the cycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle beyond named boundary: %v", e.Path)
}

// Graph is the immutable type graph a render pass consumes. Named carries
// every class, enum and non-nullable union in graph-discovery order (a
// nullable union is an optional wrapper, not a named type); disambiguation and the
// needs-declaration-before-use ordering both key off this order. TopLevels
// marks the distinguished entry-point types.
type Graph struct {
	Named     []*Type
	TopLevels []*Type

	sealed bool
	seen   map[*Type]bool
}

// NewGraph discovers every named type reachable from tops, in first-seen
// depth-first order (a named type is recorded when first reached, before
// the types its own properties refer to), and validates the
// graph's structural invariants. TopLevels is tops itself, in the given
// order.
func NewGraph(tops ...*Type) (*Graph, error) {
	g := &Graph{TopLevels: tops, seen: map[*Type]bool{}}
	for _, t := range tops {
		if err := g.walk(t, map[*Type]bool{}, nil); err != nil {
			return nil, err
		}
	}
	g.sealed = true
	if err := g.checkInvariants(); err != nil {
		return nil, err
	}
	return g, nil
}

// walk discovers every named type reachable from t, in first-seen order.
// onPath and path track the chain of Array/Map wrapper nodes on the
// current descent so a structural cycle that never passes through a
// Class/Enum/Union is caught as a CycleError instead of recursing
// forever (a nullable union counts as a wrapper here, not as a named
// boundary); crossing a named boundary resets both, since Graph.seen
// already stops re-descent into a node visited before.
func (g *Graph) walk(t *Type, onPath map[*Type]bool, path []string) error {
	if t == nil {
		return nil
	}
	if _, nullable := t.Nullable(); t.Kind.IsNamed() && !nullable {
		if g.seen[t] {
			return nil
		}
		g.seen[t] = true
		t.id = len(g.Named)
		g.Named = append(g.Named, t)
		onPath, path = map[*Type]bool{}, nil
	} else {
		if onPath[t] {
			return &CycleError{Path: append(path, t.Kind.String())}
		}
		onPath[t] = true
		path = append(path, t.Kind.String())
		defer delete(onPath, t)
	}
	switch t.Kind {
	case Array:
		return g.walk(t.Items, onPath, path)
	case Map:
		return g.walk(t.Values, onPath, path)
	case Class:
		for _, p := range t.Props {
			if err := g.walk(p.Type, onPath, path); err != nil {
				return err
			}
		}
	case Union:
		for _, m := range t.Members {
			if err := g.walk(m, onPath, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkInvariants enforces no-duplicate-property-or-case-names. The
// no-structural-cycle-short-of-a-named-boundary invariant is already
// guaranteed by the time this runs: walk returns a CycleError itself
// the moment it revisits an Array/Map wrapper node still on its current
// descent, before NewGraph ever calls checkInvariants. Nullable shape is
// a rendering strategy, checked lazily by Type.Nullable rather than
// rejected here.
func (g *Graph) checkInvariants() error {
	for _, t := range g.Named {
		switch t.Kind {
		case Class:
			seen := map[string]bool{}
			for _, p := range t.Props {
				if seen[p.Name] {
					return fmt.Errorf("ir: duplicate property %q in class %q", p.Name, t.ProposedName)
				}
				seen[p.Name] = true
				if p.Type != nil && p.Type.Kind == Null {
					return fmt.Errorf("ir: class %q property %q: null may only appear as a union member", t.ProposedName, p.Name)
				}
			}
		case Enum:
			seen := map[string]bool{}
			for _, c := range t.Cases {
				if seen[c] {
					return fmt.Errorf("ir: duplicate case %q in enum %q", c, t.ProposedName)
				}
				seen[c] = true
			}
		}
	}
	return nil
}

// ClassCount, EnumCount, UnionCount report how many named types of each
// kind were discovered, mostly useful for the status CLI command.
func (g *Graph) ClassCount() int { return g.countKind(Class) }
func (g *Graph) EnumCount() int  { return g.countKind(Enum) }
func (g *Graph) UnionCount() int { return g.countKind(Union) }

func (g *Graph) countKind(k Kind) int {
	n := 0
	for _, t := range g.Named {
		if t.Kind == k {
			n++
		}
	}
	return n
}
