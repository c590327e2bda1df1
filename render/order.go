package render

import "sourcelike.dev/typegen/ir"

// bodyOrder returns the order the body phase walks named types in: a
// leaves-first topological sort over class/enum/union edges when the
// target sets NeedsTypeDeclarationBeforeUse, graph-insertion order
// otherwise.
func bodyOrder(g *ir.Graph, needsBefore bool) []*ir.Type {
	if !needsBefore {
		return g.Named
	}
	visited := make(map[*ir.Type]bool, len(g.Named))
	var order []*ir.Type
	var visit func(t *ir.Type)
	visit = func(t *ir.Type) {
		if t == nil || visited[t] {
			return
		}
		visited[t] = true
		for _, dep := range dependencies(t) {
			visit(dep)
		}
		order = append(order, t)
	}
	for _, t := range g.Named {
		visit(t)
	}
	return order
}

// dependencies returns t's direct named-type dependencies: the edges a
// leaves-first topological sort must satisfy before t itself may be
// declared.
func dependencies(t *ir.Type) []*ir.Type {
	switch t.Kind {
	case ir.Class:
		var deps []*ir.Type
		for _, p := range t.Props {
			deps = append(deps, namedDeps(p.Type)...)
		}
		return deps
	case ir.Union:
		var deps []*ir.Type
		for _, m := range t.Members {
			deps = append(deps, namedDeps(m)...)
		}
		return deps
	default:
		return nil
	}
}

func namedDeps(t *ir.Type) []*ir.Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case ir.Array:
		return namedDeps(t.Items)
	case ir.Map:
		return namedDeps(t.Values)
	case ir.Union:
		if _, ok := t.Nullable(); !ok {
			return []*ir.Type{t}
		}
		var deps []*ir.Type
		for _, m := range t.Members {
			deps = append(deps, namedDeps(m)...)
		}
		return deps
	default:
		if t.Kind.IsNamed() {
			return []*ir.Type{t}
		}
		return nil
	}
}
