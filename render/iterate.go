package render

import (
	"sourcelike.dev/typegen/ir"
	"sourcelike.dev/typegen/rope"
)

// PropertyBlankLineMode controls the blank lines ForEachClassProperty
// interposes when a property carries a description.
type PropertyBlankLineMode int

const (
	// PropertyBlankLinesNone never inserts a blank line between properties.
	PropertyBlankLinesNone PropertyBlankLineMode = iota
	// PropertyBlankLinesAroundDescribed inserts a blank line before (and,
	// if the next property has no description of its own, after) any
	// property that carries a description, so its comment block visually
	// separates from plain neighbours.
	PropertyBlankLinesAroundDescribed
)

// ForEachClassProperty visits t's properties in declaration order,
// calling fn with each property's index and the property itself, whose
// Name is the raw (unstyled) JSON key, preserved verbatim for the
// serializer contract. When mode requests it, a blank line is emitted
// on c around any described property.
func ForEachClassProperty(c *rope.Context, t *ir.Type, mode PropertyBlankLineMode, fn func(idx int, p ir.Property)) {
	for i, p := range t.Props {
		if mode == PropertyBlankLinesAroundDescribed && p.Description != "" && i > 0 {
			c.EnsureBlankLine()
		}
		fn(i, p)
		if mode == PropertyBlankLinesAroundDescribed && p.Description != "" && i < len(t.Props)-1 {
			c.EnsureBlankLine()
		}
	}
}
