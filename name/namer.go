package name

import (
	"fmt"
	"strconv"
	"unicode"
)

// Legalizer supplies the two character-class predicates a target needs to
// legalize a styled identifier.
type Legalizer struct {
	IsStart func(r rune) bool
	IsPart  func(r rune) bool
	// Underscore is substituted for any illegal character.
	Underscore rune
	// Fallback is used when legalization would otherwise produce "".
	Fallback string
}

// DefaultLegalizer matches most curly-brace languages: identifiers start
// with a letter or underscore and continue with letters, digits or
// underscore.
func DefaultLegalizer() Legalizer {
	return Legalizer{
		IsStart: func(r rune) bool {
			return unicode.IsLetter(r) || r == '_'
		},
		IsPart: func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		},
		Underscore: '_',
		Fallback:   "empty",
	}
}

// Legalize replaces characters the predicates reject with Underscore, and
// escapes a start-illegal (typically leading-digit) result by prefixing
// "The" as its own word before any substitution, so "10 km" legalizes to
// "The10Km" style results. An all-illegal input falls back to Fallback.
func (l Legalizer) Legalize(s string) string {
	if s == "" {
		return l.Fallback
	}
	runes := []rune(s)
	if !l.IsStart(runes[0]) {
		s = "The" + s
		runes = []rune(s)
	}
	out := make([]rune, len(runes))
	for i, r := range runes {
		ok := l.IsPart(r)
		if i == 0 {
			ok = l.IsStart(r)
		}
		if ok {
			out[i] = r
		} else {
			out[i] = l.Underscore
		}
	}
	res := string(out)
	if res == "" {
		return l.Fallback
	}
	return res
}

// Name is an abstract handle into a Namer's arena. It resolves to a
// concrete string only after the owning Namer is sealed; the emit engine
// (package rope) defers resolution until then.
type Name struct {
	namer   *Namer
	index   int
	raw     string
	order   int
	aliases []string
}

// Raw returns the proposed, unstyled name this handle was created from.
// Useful for diagnostics, never for emission.
func (n *Name) Raw() string { return n.raw }

// String resolves the name. It panics with an ErrUnassignedName-wrapped
// message if the owning Namer has not been sealed yet: this is a
// programmer error, not a recoverable one. Emission must never touch a
// name before its namer seals.
func (n *Name) String() string {
	s, ok := n.namer.Resolved(n)
	if !ok {
		panic(&ErrUnassignedName{Raw: n.raw})
	}
	return s
}

// ErrUnassignedName reports a Name that reached serialization before its
// Namer sealed.
type ErrUnassignedName struct{ Raw string }

func (e *ErrUnassignedName) Error() string {
	return fmt.Sprintf("name: unassigned name for raw %q", e.Raw)
}

// namerState is the two-state machine a Namer moves through: open accepts
// allocations, sealed is read-only.
type namerState uint8

const (
	stateOpen namerState = iota
	stateSealed
)

// Namer owns one namespace's allocator: a style function, a forbidden-word
// set, and a deterministic disambiguation strategy. Each logical namespace
// (types, a class's properties, an enum's cases, a union's member
// constructors) gets its own *Namer instance.
type Namer struct {
	style     func(words []string) string
	legalizer Legalizer
	forbidden map[string]bool

	state    namerState
	handles  []*Name
	assigned []string // parallel to handles, valid only once sealed
}

// NewNamer builds a Namer that styles raw words with style and legalizes
// the result with legalizer. forbidden is copied; callers may mutate their
// own slice afterward.
func NewNamer(style func(words []string) string, legalizer Legalizer, forbidden []string) *Namer {
	f := make(map[string]bool, len(forbidden))
	for _, w := range forbidden {
		f[w] = true
	}
	return &Namer{style: style, legalizer: legalizer, forbidden: f}
}

// AddForbidden extends the forbidden set after construction. Used to wire
// in another namespace's already-assigned names, e.g. property namers
// that also need to avoid the global type namespace.
func (nr *Namer) AddForbidden(names ...string) {
	for _, n := range names {
		nr.forbidden[n] = true
	}
}

// NewName creates a Name handle for raw in this namespace. order controls
// disambiguation precedence: ties broken by later graph order receive the
// numeric suffix. NewName panics if the Namer is already sealed;
// allocation only happens while a Namer is open.
func (nr *Namer) NewName(raw string, order int) *Name {
	if nr.state == stateSealed {
		panic("name: NewName called on a sealed Namer")
	}
	n := &Name{namer: nr, raw: raw, order: order, index: len(nr.handles)}
	nr.handles = append(nr.handles, n)
	return n
}

// Seal assigns every pending handle a concrete, collision-free, non-forbidden
// string and transitions the Namer to SEALED. Seal is idempotent.
func (nr *Namer) Seal() {
	if nr.state == stateSealed {
		return
	}
	order := make([]int, len(nr.handles))
	for i := range order {
		order[i] = i
	}
	// Stable sort by (order, index): lexically-later entities (by graph
	// order) are the ones that receive a disambiguating suffix.
	sortByOrder(order, nr.handles)

	used := map[string]bool{}
	for k := range nr.forbidden {
		used[k] = true
	}
	assigned := make([]string, len(nr.handles))
	for _, idx := range order {
		h := nr.handles[idx]
		base := nr.style(SplitWords(h.raw))
		base = nr.legalizer.Legalize(base)
		cand := base
		suffix := 2
		for used[cand] {
			cand = base + "_" + strconv.Itoa(suffix)
			suffix++
		}
		used[cand] = true
		assigned[idx] = cand
	}
	nr.assigned = assigned
	nr.state = stateSealed
}

func sortByOrder(idx []int, handles []*Name) {
	// insertion sort: namespaces are small (class properties, enum cases,
	// named types within one schema) and this keeps the comparator simple
	// and obviously stable, matching handles[i].order ties broken by
	// original index.
	for i := 1; i < len(idx); i++ {
		j := i
		for j > 0 && less(handles, idx[j], idx[j-1]) {
			idx[j], idx[j-1] = idx[j-1], idx[j]
			j--
		}
	}
}

func less(handles []*Name, a, b int) bool {
	ha, hb := handles[a], handles[b]
	if ha.order != hb.order {
		return ha.order < hb.order
	}
	return a < b
}

// Resolved returns n's assigned string once this Namer is sealed.
func (nr *Namer) Resolved(n *Name) (string, bool) {
	if nr.state != stateSealed {
		return "", false
	}
	return nr.assigned[n.index], true
}

// Sealed reports whether the Namer has been sealed.
func (nr *Namer) Sealed() bool { return nr.state == stateSealed }

// AssignedNames returns every assigned string, in handle-creation order.
// The Namer must already be sealed.
func (nr *Namer) AssignedNames() []string {
	out := make([]string, len(nr.assigned))
	copy(out, nr.assigned)
	return out
}

