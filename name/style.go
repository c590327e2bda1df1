package name

import (
	"strings"
	"unicode"
)

// WordStyle recases a single word. The boolean is true only for the first
// word of an identifier, letting a style special-case it (firstWord vs.
// word).
type WordStyle func(word string, first bool) string

// FirstUpper uppercases the leading rune and lowercases the rest. Used
// both as the tail-word style for PascalCase and camelCase, and as the
// first-word style wherever a style wants an uppercase leading word.
func FirstUpper(w string, _ bool) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}

// FirstLower lowercases the leading rune and leaves the rest untouched in
// case, for camelCase's first word.
func FirstLower(w string, _ bool) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	return string(unicode.ToLower(r[0])) + string(r[1:])
}

// AllUpper upper-cases the whole word. Used by the acronym-aware policy
// for words the target classifies as acronyms ("km", "id", "html").
func AllUpper(w string, _ bool) string { return strings.ToUpper(w) }

// AllLower lower-cases the whole word, used for snake_case segments.
func AllLower(w string, _ bool) string { return strings.ToLower(w) }

// AcronymAware wraps a base style so that words in acronyms (matched
// case-insensitively) are upper-cased instead of styled normally.
func AcronymAware(base WordStyle, acronyms map[string]bool) WordStyle {
	return func(w string, first bool) string {
		if acronyms[strings.ToLower(w)] {
			return AllUpper(w, first)
		}
		return base(w, first)
	}
}

// DefaultAcronyms is the builtin set AcronymAwarePascalCase checks against:
// initialisms and unit abbreviations that read wrong merely title-cased
// ("Id" instead of "ID", "Km" instead of "KM").
var DefaultAcronyms = map[string]bool{
	"id": true, "url": true, "uri": true, "html": true, "json": true,
	"xml": true, "http": true, "https": true, "api": true, "km": true,
	"cm": true, "mm": true, "kg": true,
}

// AcronymAwarePascalCase is PascalCase with both word positions routed
// through AcronymAware against acronyms, so a word the set recognizes is
// upper-cased in place instead of merely having its leading rune
// capitalized. Legalize's leading-digit "The" prefix runs on the already
// styled string, so "10 km" styles to "10KM" and legalizes to "The10KM".
func AcronymAwarePascalCase(acronyms map[string]bool) func(words []string) string {
	style := AcronymAware(FirstUpper, acronyms)
	return func(words []string) string { return Combine(words, "", style, style) }
}

// Combine styles the first word with first and every following word with
// rest, then joins with sep. PascalCase, CamelCase, SnakeCase, and
// ScreamingSnakeCase below are all instances of this with a particular
// (first, rest, sep) triple.
func Combine(words []string, sep string, first, rest WordStyle) string {
	out := make([]string, len(words))
	for i, w := range words {
		if i == 0 {
			out[i] = first(w, true)
		} else {
			out[i] = rest(w, false)
		}
	}
	return strings.Join(out, sep)
}

// PascalCase styles words as "FooBarBaz": every word through FirstUpper,
// joined with no separator.
func PascalCase(words []string) string { return Combine(words, "", FirstUpper, FirstUpper) }

// CamelCase styles words as "fooBarBaz": the first word through
// FirstLower (only its leading rune is lowercased), the rest FirstUpper,
// joined with no separator.
func CamelCase(words []string) string { return Combine(words, "", FirstLower, FirstUpper) }

// SnakeCase styles words as "foo_bar_baz": every word lower-cased, joined
// with underscores.
func SnakeCase(words []string) string { return Combine(words, "_", AllLower, AllLower) }

// ScreamingSnakeCase styles words as "FOO_BAR_BAZ": Ruby's convention for
// constants. The Ruby target's enum cases use AcronymAwarePascalCase instead.
func ScreamingSnakeCase(words []string) string { return Combine(words, "_", AllUpper, AllUpper) }
