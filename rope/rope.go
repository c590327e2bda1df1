// Package rope implements the source rope and emit engine: the
// append-only, indentation-aware line buffer the renderer core uses to
// assemble generated source.
//
// A Frag is, recursively, either a literal string, a *name.Name handle
// whose text is not yet known, a sequence of Frags, or an annotated span
// used for diagnostic markers. Resolution of Name handles happens when a
// line is flushed, never earlier, and never by touching n.String() before
// its Namer has sealed.
package rope

import (
	"strings"

	"sourcelike.dev/typegen/name"
)

// Frag is the source rope's node type.
type Frag interface{ resolve(*strings.Builder) }

// Lit is a literal string fragment.
func Lit(s string) Frag { return litFrag(s) }

type litFrag string

func (f litFrag) resolve(b *strings.Builder) { b.WriteString(string(f)) }

// Ref resolves to n's assigned string, deferred until n's Namer seals.
func Ref(n *name.Name) Frag { return nameFrag{n} }

type nameFrag struct{ n *name.Name }

func (f nameFrag) resolve(b *strings.Builder) { b.WriteString(f.n.String()) }

// Seq concatenates frags with no separator: the nested-sequence case.
func Seq(frags ...Frag) Frag { return seqFrag(frags) }

type seqFrag []Frag

func (f seqFrag) resolve(b *strings.Builder) {
	for _, sub := range f {
		sub.resolve(b)
	}
}

// Annotated wraps inner with a diagnostic tag that is not rendered to
// output but is available to anything walking the rope before flush
// (e.g. a future linter hook); resolution just passes through to inner.
func Annotated(tag string, inner Frag) Frag { return spanFrag{tag, inner} }

type spanFrag struct {
	tag   string
	inner Frag
}

func (f spanFrag) resolve(b *strings.Builder) { f.inner.resolve(b) }

// Join concatenates frags with sep between each element.
func Join(sep string, frags ...Frag) Frag {
	parts := make([]Frag, 0, len(frags)*2)
	for i, f := range frags {
		if i > 0 {
			parts = append(parts, Lit(sep))
		}
		parts = append(parts, f)
	}
	return Seq(parts...)
}

// resolveString flattens a Frag into its final text. It is the only place
// Name.String() is ever called from this package.
func resolveString(f Frag) string {
	var b strings.Builder
	f.resolve(&b)
	return b.String()
}
