package render

import (
	"fmt"

	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/name"
)

// NameTable is the result of render's first pass: every named type, class
// property, enum case and union member has a *name.Name handle once this
// table is built, and every Namer backing it is sealed. Lookups by graph
// identity are O(1) maps keyed on the type pointer itself, which is the
// type graph's own notion of identity.
type NameTable struct {
	types *name.Namer
	names map[*ir.Type]*name.Name

	classProps map[*ir.Type][]*name.Name
	enumCases  map[*ir.Type][]*name.Name
	unionMems  map[*ir.Type][]*name.Name
}

// TypeName returns t's assigned identifier handle.
func (nt *NameTable) TypeName(t *ir.Type) *name.Name { return nt.names[t] }

// PropertyName returns the i'th property's assigned identifier handle for
// class t.
func (nt *NameTable) PropertyName(t *ir.Type, i int) *name.Name { return nt.classProps[t][i] }

// EnumCaseName returns the i'th case's assigned identifier handle for
// enum t.
func (nt *NameTable) EnumCaseName(t *ir.Type, i int) *name.Name { return nt.enumCases[t][i] }

// UnionMemberName returns the i'th member's assigned constructor-name
// handle for union t, for targets that need an explicit sum type.
func (nt *NameTable) UnionMemberName(t *ir.Type, i int) *name.Name { return nt.unionMems[t][i] }

// buildNameTable walks the graph in discovery order, allocates one Name
// per named type and per scoped child entity, then seals every Namer so
// later phases may resolve freely.
func buildNameTable(g *ir.Graph, s Strategy) *NameTable {
	nt := &NameTable{
		types:      s.Types(),
		names:      map[*ir.Type]*name.Name{},
		classProps: map[*ir.Type][]*name.Name{},
		enumCases:  map[*ir.Type][]*name.Name{},
		unionMems:  map[*ir.Type][]*name.Name{},
	}
	for i, t := range g.Named {
		nt.names[t] = nt.types.NewName(t.ProposedName, i)
	}
	for _, t := range g.Named {
		switch t.Kind {
		case ir.Class:
			pn := s.NewClassProperties()
			handles := make([]*name.Name, len(t.Props))
			for i, p := range t.Props {
				handles[i] = pn.NewName(p.Name, i)
			}
			pn.Seal()
			nt.classProps[t] = handles
		case ir.Enum:
			en := s.NewEnumCases()
			handles := make([]*name.Name, len(t.Cases))
			for i, c := range t.Cases {
				handles[i] = en.NewName(c, i)
			}
			en.Seal()
			nt.enumCases[t] = handles
		case ir.Union:
			un := s.NewUnionMembers()
			handles := make([]*name.Name, len(t.Members))
			for i, m := range t.Members {
				handles[i] = un.NewName(memberRawName(m), i)
			}
			un.Seal()
			nt.unionMems[t] = handles
		}
	}
	// Top-levels that are not themselves named types (e.g. a bare array
	// or a nullable wrapper) still need a type-namespace identifier for
	// their generated alias/wrapper.
	for i, t := range g.TopLevels {
		if _, ok := nt.names[t]; !ok {
			nt.names[t] = nt.types.NewName(topLevelRawName(t, i), len(g.Named)+i)
		}
	}
	nt.types.Seal()
	return nt
}

func memberRawName(m *ir.Type) string {
	if m.ProposedName != "" {
		return m.ProposedName
	}
	return m.Kind.String()
}

// topLevelRawName names a top-level type for the type namespace: one
// that is really just array/map/nullable wrapping around a single named
// type reuses that type's proposed name; anything else (a bare array of
// primitives, a multi-member union) gets its own "TopLevel" identifier.
func topLevelRawName(t *ir.Type, i int) string {
	if t.ProposedName != "" {
		return t.ProposedName
	}
	if sole, ok := soleNamedTarget(t); ok {
		return sole.ProposedName
	}
	if i == 0 {
		return "TopLevel"
	}
	return fmt.Sprintf("TopLevel%d", i+1)
}

func soleNamedTarget(t *ir.Type) (*ir.Type, bool) {
	switch t.Kind {
	case ir.Array:
		return soleNamedTarget(t.Items)
	case ir.Map:
		return soleNamedTarget(t.Values)
	case ir.Union:
		if inner, ok := t.Nullable(); ok {
			return soleNamedTarget(inner)
		}
		return nil, false
	default:
		if t.Kind.IsNamed() {
			return t, true
		}
		return nil, false
	}
}
