package triplestore

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Patch computes the minimal delete-old/insert-new statement for a partial
// change-set against an existing resource. For every field present in the
// change-set the prior value (bound to a fresh variable) is deleted and the
// new term inserted; the prior match is OPTIONAL since the field may never
// have been set. The WHERE clause also asserts the resource exists so the
// statement is a guaranteed no-op on a missing subject instead of an error.
//
// Fields absent from the change-set (or unset per the empty-string rule) are
// untouched. An effectively empty change-set returns "" and callers skip the
// store round-trip entirely.
func (s Spec) Patch(iri string, changes map[string]interface{}) (string, error) {
	if !ValidIRI(iri) {
		return "", errors.Wrap(ErrInvalidIRI, iri)
	}

	var deletes, inserts, optionals []string
	for _, f := range s.Fields { // spec order keeps statements deterministic
		v, ok := changes[f.Name]
		if !ok || unset(f, v) {
			continue
		}
		term, err := renderTerm(f, deref(v))
		if err != nil {
			return "", err
		}
		old := "?old" + strings.Title(f.Name)
		deletes = append(deletes, fmt.Sprintf("<%s> <%s> %s .", iri, f.Predicate, old))
		inserts = append(inserts, fmt.Sprintf("<%s> <%s> %s .", iri, f.Predicate, term))
		optionals = append(optionals, fmt.Sprintf("OPTIONAL { <%s> <%s> %s . }", iri, f.Predicate, old))
	}
	if len(deletes) == 0 {
		return "", nil // no changes
	}

	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("DELETE {\n")
	for _, d := range deletes {
		b.WriteString("    " + d + "\n")
	}
	b.WriteString("}\nINSERT {\n")
	for _, i := range inserts {
		b.WriteString("    " + i + "\n")
	}
	b.WriteString("}\nWHERE {\n")
	fmt.Fprintf(&b, "    <%s> ?p ?o .\n", iri)
	for _, o := range optionals {
		b.WriteString("    " + o + "\n")
	}
	b.WriteString("}\n")
	return b.String(), nil
}
