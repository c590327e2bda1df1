// Package schema turns a JSON Schema document into the renderer core's
// type graph. It is the one piece upstream of package ir: everything
// below this layer (ir, name, rope, render) is schema-format agnostic.
package schema

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/render"
	"xelf.org/xelf/lit"
)

// LoadJSONSchema reads a JSON Schema document from r and builds the type
// graph rooted at its top-level shape. topName seeds the root's proposed
// name when the document is anonymous (no top-level "title"); every
// "definitions"/"$defs" entry is registered as a named type up front, so
// $ref cycles between them resolve to the same graph node regardless of
// which one is read first. This is the two-pass shape recursive
// definitions need.
func LoadJSONSchema(topName string, r io.Reader) (*ir.Graph, error) {
	v, err := lit.Read(r, topName)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", topName, err)
	}
	root, ok := v.(lit.Keyr)
	if !ok {
		return nil, fmt.Errorf("schema: %s: root is not an object", topName)
	}
	b := &builder{defs: map[string]*ir.Type{}}
	if err := b.registerDefs(root); err != nil {
		return nil, err
	}
	if title, ok := str(root, "title"); ok {
		topName = title
	}
	top, err := b.build(topName, root)
	if err != nil {
		return nil, err
	}
	g, err := ir.NewGraph(top)
	if err != nil {
		return nil, wrapGraphError(err)
	}
	return g, nil
}

// wrapGraphError reclassifies ir.NewGraph's CycleError as
// render.ErrCycleBeyondNamedBoundary, so callers checking the render
// package's error taxonomy (the CLI's exit-code mapping, in particular)
// see one consistent type regardless of which layer actually detected
// the cycle while building the graph.
func wrapGraphError(err error) error {
	var cycle *ir.CycleError
	if errors.As(err, &cycle) {
		return &render.ErrCycleBeyondNamedBoundary{Cause: cycle}
	}
	return err
}

type builder struct {
	defs map[string]*ir.Type
}

// registerDefs finds "definitions" or "$defs" (JSON Schema's draft-04
// and draft-2019-09 spellings, respectively) and allocates one named
// *ir.Type per entry before recursing into any of their bodies.
func (b *builder) registerDefs(root lit.Keyr) error {
	defsKeyr, ok := keyr(root, "definitions")
	if !ok {
		defsKeyr, ok = keyr(root, "$defs")
	}
	if !ok {
		return nil
	}
	for _, key := range defsKeyr.Keys() {
		entry, err := defsKeyr.Key(key)
		if err != nil {
			return err
		}
		kr, ok := entry.(lit.Keyr)
		if !ok {
			continue
		}
		if _, isEnum := keyIdxr(kr, "enum"); isEnum {
			b.defs[key] = ir.NewEnum(key)
		} else {
			b.defs[key] = ir.NewClass(key)
		}
	}
	for _, key := range defsKeyr.Keys() {
		t, ok := b.defs[key]
		if !ok {
			continue
		}
		entry, err := defsKeyr.Key(key)
		if err != nil {
			return err
		}
		kr := entry.(lit.Keyr)
		if err := b.fillNamed(t, kr, key); err != nil {
			return fmt.Errorf("schema: definition %q: %w", key, err)
		}
	}
	return nil
}

// fillNamed populates an already-allocated named type's body in place,
// so every $ref resolved to it before this call keeps pointing at the
// same graph node.
func (b *builder) fillNamed(t *ir.Type, kr lit.Keyr, hint string) error {
	if desc, ok := str(kr, "description"); ok {
		t.Description = desc
	}
	switch t.Kind {
	case ir.Enum:
		cases, err := b.enumCases(kr)
		if err != nil {
			return err
		}
		t.Cases = cases
	case ir.Class:
		props, err := b.properties(kr, hint)
		if err != nil {
			return err
		}
		t.Props = props
	}
	return nil
}

func (b *builder) enumCases(kr lit.Keyr) ([]string, error) {
	idxr, ok := keyIdxr(kr, "enum")
	if !ok {
		return nil, fmt.Errorf("missing enum values")
	}
	n := idxr.Len()
	cases := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, err := idxr.Idx(i)
		if err != nil {
			return nil, err
		}
		s, err := lit.ToStr(v)
		if err != nil {
			return nil, fmt.Errorf("enum case %d: %w", i, err)
		}
		cases = append(cases, string(s))
	}
	return cases, nil
}

func (b *builder) properties(kr lit.Keyr, hint string) ([]ir.Property, error) {
	propsKeyr, ok := keyr(kr, "properties")
	if !ok {
		return nil, nil
	}
	required := map[string]bool{}
	if reqIdxr, ok := keyIdxr(kr, "required"); ok {
		for i := 0; i < reqIdxr.Len(); i++ {
			v, err := reqIdxr.Idx(i)
			if err != nil {
				return nil, err
			}
			s, err := lit.ToStr(v)
			if err != nil {
				return nil, err
			}
			required[string(s)] = true
		}
	}
	keys := propsKeyr.Keys()
	props := make([]ir.Property, 0, len(keys))
	for _, key := range keys {
		entry, err := propsKeyr.Key(key)
		if err != nil {
			return nil, err
		}
		pkr, ok := entry.(lit.Keyr)
		if !ok {
			return nil, fmt.Errorf("property %q is not an object", key)
		}
		pt, err := b.build(hint+titleCase(key), pkr)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		desc, _ := str(pkr, "description")
		props = append(props, ir.Property{
			Name:        key,
			Type:        pt,
			Optional:    !required[key],
			Description: desc,
		})
	}
	return props, nil
}

// build resolves one schema node ($ref, enum, object, array, a primitive
// "type", or an anyOf/oneOf union) into a type graph node.
// hint names an inline (non-$ref, non-definitions) named type that has
// no "title" of its own, e.g. an object nested directly inside a
// property with no $ref.
func (b *builder) build(hint string, kr lit.Keyr) (*ir.Type, error) {
	if ref, ok := str(kr, "$ref"); ok {
		return b.resolveRef(ref)
	}
	if title, ok := str(kr, "title"); ok {
		hint = title
	}
	if _, ok := keyIdxr(kr, "enum"); ok {
		cases, err := b.enumCases(kr)
		if err != nil {
			return nil, err
		}
		t := ir.NewEnum(hint, cases...)
		if desc, ok := str(kr, "description"); ok {
			t.Description = desc
		}
		return t, nil
	}
	if membersIdxr, ok := firstOf(kr, "anyOf", "oneOf"); ok {
		return b.buildUnion(hint, membersIdxr)
	}
	typ, hasType := str(kr, "type")
	if !hasType {
		if typeList, ok := keyIdxr(kr, "type"); ok {
			return b.buildTypeList(hint, kr, typeList)
		}
		// No "type", no "$ref", no "enum": treat as Any, per JSON
		// Schema's own fallback for an unconstrained schema.
		return ir.NewAny(), nil
	}
	return b.buildScalarType(hint, kr, typ)
}

func (b *builder) buildScalarType(hint string, kr lit.Keyr, typ string) (*ir.Type, error) {
	switch typ {
	case "null":
		return ir.NewNull(), nil
	case "boolean":
		return ir.NewBool(), nil
	case "integer":
		return ir.NewInt(), nil
	case "number":
		return ir.NewDouble(), nil
	case "string":
		return ir.NewString(), nil
	case "array":
		itemsKeyr, ok := keyr(kr, "items")
		if !ok {
			return ir.NewArray(ir.NewAny()), nil
		}
		items, err := b.build(hint+"Item", itemsKeyr)
		if err != nil {
			return nil, err
		}
		return ir.NewArray(items), nil
	case "object":
		if _, ok := keyr(kr, "properties"); ok {
			props, err := b.properties(kr, hint)
			if err != nil {
				return nil, err
			}
			t := ir.NewClass(hint, props...)
			if desc, ok := str(kr, "description"); ok {
				t.Description = desc
			}
			return t, nil
		}
		if apKeyr, ok := keyr(kr, "additionalProperties"); ok {
			values, err := b.build(hint+"Value", apKeyr)
			if err != nil {
				return nil, err
			}
			return ir.NewMap(values), nil
		}
		return ir.NewMap(ir.NewAny()), nil
	default:
		return ir.NewAny(), nil
	}
}

// buildTypeList handles the draft-04 "type": ["string", "null"] shorthand
// for nullability, and the general case of a multi-primitive-type schema
// as an implicit union.
func (b *builder) buildTypeList(hint string, kr lit.Keyr, typeList lit.Idxr) (*ir.Type, error) {
	var members []*ir.Type
	for i := 0; i < typeList.Len(); i++ {
		v, err := typeList.Idx(i)
		if err != nil {
			return nil, err
		}
		s, err := lit.ToStr(v)
		if err != nil {
			return nil, err
		}
		m, err := b.buildScalarType(hint, kr, string(s))
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if len(members) == 2 {
		if members[0].Kind == ir.Null {
			return ir.NewNullable(members[1]), nil
		}
		if members[1].Kind == ir.Null {
			return ir.NewNullable(members[0]), nil
		}
	}
	return ir.NewUnion(hint, members...), nil
}

func (b *builder) buildUnion(hint string, membersIdxr lit.Idxr) (*ir.Type, error) {
	var members []*ir.Type
	for i := 0; i < membersIdxr.Len(); i++ {
		v, err := membersIdxr.Idx(i)
		if err != nil {
			return nil, err
		}
		mkr, ok := v.(lit.Keyr)
		if !ok {
			return nil, fmt.Errorf("union member %d is not an object", i)
		}
		m, err := b.build(fmt.Sprintf("%sMember%d", hint, i+1), mkr)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if len(members) == 2 {
		if members[0].Kind == ir.Null {
			return ir.NewNullable(members[1]), nil
		}
		if members[1].Kind == ir.Null {
			return ir.NewNullable(members[0]), nil
		}
	}
	return ir.NewUnion(hint, members...), nil
}

// titleCase uppercases just the leading rune of key, for building a hint
// name out of a property key when the property has no "title" of its own.
// Final identifier casing is the naming pipeline's job, not this one.
func titleCase(key string) string {
	if key == "" {
		return key
	}
	r := []rune(key)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}

func (b *builder) resolveRef(ref string) (*ir.Type, error) {
	name := ref
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		name = ref[i+1:]
	}
	if t, ok := b.defs[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("schema: unresolved $ref %q", ref)
}

// keyr fetches k from v as a lit.Keyr, if present and shaped that way.
func keyr(v lit.Keyr, k string) (lit.Keyr, bool) {
	val, err := v.Key(k)
	if err != nil {
		return nil, false
	}
	kr, ok := val.(lit.Keyr)
	return kr, ok
}

// keyIdxr fetches k from v as a lit.Idxr, if present and shaped that way.
func keyIdxr(v lit.Keyr, k string) (lit.Idxr, bool) {
	val, err := v.Key(k)
	if err != nil {
		return nil, false
	}
	idxr, ok := val.(lit.Idxr)
	return idxr, ok
}

// firstOf returns the first of keys present on v as a lit.Idxr.
func firstOf(v lit.Keyr, keys ...string) (lit.Idxr, bool) {
	for _, k := range keys {
		if idxr, ok := keyIdxr(v, k); ok {
			return idxr, true
		}
	}
	return nil, false
}

// str fetches k from v as a string, if present and shaped that way.
func str(v lit.Keyr, k string) (string, bool) {
	val, err := v.Key(k)
	if err != nil {
		return "", false
	}
	s, err := lit.ToStr(val)
	if err != nil {
		return "", false
	}
	return string(s), true
}
