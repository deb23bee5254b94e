package util

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// ResourceName derives the plural resource segment used in request paths
// from a singular kind, e.g. "Foo" -> "foos", "Policy" -> "policies".
// The server addresses collections by this name, so the derivation has to
// stay deterministic: the kind is the single source of truth.
func ResourceName(kind string) string {
	return inflection.Plural(strings.ToLower(kind))
}

// IsPlural reports whether s is already in its plural form.
//
// This is a best-effort guard, not a strict check: nouns whose singular
// and plural forms coincide (e.g. "sheep") are indistinguishable and will
// be reported as plural.
func IsPlural(s string) bool {
	lower := strings.ToLower(s)
	return inflection.Plural(lower) == lower
}

// IsCapitalizedWord reports whether s is written in capitalized-word
// style: a leading uppercase letter followed by letters and digits only,
// no separators. Kubernetes kinds ("Foo", "HTTPRoute") satisfy this.
func IsCapitalizedWord(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
