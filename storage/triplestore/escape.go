package triplestore

import (
	"strings"

	"github.com/google/uuid"
)

// litEscaper rewrites every character that could let a literal alter query
// structure. Backslash goes first so the later escapes are not double-hit.
var litEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

// EscapeLiteral prepares a string for interpolation between double quotes in
// a SPARQL document. Every literal, without exception, goes through here;
// queries are textually composed, so a raw quote is an injection.
func EscapeLiteral(s string) string {
	return litEscaper.Replace(s)
}

// ValidIRI reports whether iri can be safely written inside <...>.
func ValidIRI(iri string) bool {
	if iri == "" || !strings.Contains(iri, "://") {
		return false
	}
	return !strings.ContainsAny(iri, "<>\"{}|^`\\ \t\n\r")
}

const slugMax = 40

// MintIRI derives a fresh resource IRI from a human-readable label: lowercase,
// non-alphanumerics collapsed to underscores, bounded prefix, then a short
// random token so same-labelled resources never collide.
func MintIRI(ns, label string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, label)
	if len(slug) > slugMax {
		slug = slug[:slugMax]
	}
	return ns + slug + "_" + uuid.New().String()[:8]
}
