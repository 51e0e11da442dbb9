package triplestore

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Well-known vocabulary IRIs.
const (
	RDFType   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSLabel = "http://www.w3.org/2000/01/rdf-schema#label"

	xsdInteger  = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimal  = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdBoolean  = "http://www.w3.org/2001/XMLSchema#boolean"
	xsdDate     = "http://www.w3.org/2001/XMLSchema#date"
	xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

const queryPrefixes = "PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>\n"

// Kind is the scalar kind of an entity field.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Date
	DateTime
	IRI // reference to another resource
)

type (
	// Field describes one recognized field of an entity: its binding-variable
	// name, the predicate that stores it and how its values are rendered.
	Field struct {
		Name      string
		Predicate string
		Kind      Kind
		Required  bool // must be present on create
	}

	// Join pulls one extra binding off a referenced resource when listing,
	// e.g. the instructor's name off an activity's hasInstructor target.
	// Missing targets simply leave the variable unbound.
	Join struct {
		On        string // name of the IRI field whose target is matched
		Predicate string
		Var       string
	}

	// Spec is the graph mapping of one entity type: the class marker all
	// reads filter on, plus the recognized fields. A Spec instance drives the
	// select builders, the create statement and the patch engine, so each
	// entity's mapping is declared exactly once.
	Spec struct {
		Class  string
		Fields []Field
		Joins  []Join
	}
)

func (s Spec) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// renderTerm renders a Go value as a SPARQL term for the given field kind.
func renderTerm(f Field, v interface{}) (string, error) {
	switch f.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return "", errors.Errorf("field %s: want string, got %T", f.Name, v)
		}
		return `"` + EscapeLiteral(s) + `"`, nil
	case Int:
		var n int
		switch val := v.(type) {
		case int:
			n = val
		case *int:
			n = *val
		default:
			return "", errors.Errorf("field %s: want int, got %T", f.Name, v)
		}
		return fmt.Sprintf(`"%d"^^<%s>`, n, xsdInteger), nil
	case Float:
		val, ok := v.(float64)
		if !ok {
			return "", errors.Errorf("field %s: want float64, got %T", f.Name, v)
		}
		return fmt.Sprintf(`"%v"^^<%s>`, val, xsdDecimal), nil
	case Bool:
		val, ok := v.(bool)
		if !ok {
			return "", errors.Errorf("field %s: want bool, got %T", f.Name, v)
		}
		return fmt.Sprintf(`"%t"^^<%s>`, val, xsdBoolean), nil
	case Date:
		return renderTime(f, v, "2006-01-02", xsdDate)
	case DateTime:
		return renderTime(f, v, "2006-01-02T15:04:05", xsdDateTime)
	case IRI:
		iri, ok := v.(string)
		if !ok {
			return "", errors.Errorf("field %s: want IRI string, got %T", f.Name, v)
		}
		if !ValidIRI(iri) {
			return "", errors.Wrap(ErrInvalidIRI, iri)
		}
		return "<" + iri + ">", nil
	}
	return "", errors.Errorf("field %s: unknown kind %d", f.Name, f.Kind)
}

func renderTime(f Field, v interface{}, layout, datatype string) (string, error) {
	switch val := v.(type) {
	case time.Time:
		return fmt.Sprintf(`"%s"^^<%s>`, val.Format(layout), datatype), nil
	case string: // already formatted by the caller
		return fmt.Sprintf(`"%s"^^<%s>`, EscapeLiteral(val), datatype), nil
	default:
		return "", errors.Errorf("field %s: want time.Time, got %T", f.Name, v)
	}
}

// unset reports whether a change-set value means "leave this field alone".
// Empty strings are "unset". Explicit booleans are always meaningful, so a
// *bool/bool value is never dropped.
func unset(f Field, v interface{}) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return f.Kind != Bool && val == ""
	case *int:
		return val == nil
	case *bool:
		return val == nil
	case time.Time:
		return val.IsZero()
	}
	return false
}

func deref(v interface{}) interface{} {
	switch val := v.(type) {
	case *int:
		return *val
	case *bool:
		return *val
	}
	return v
}

// SelectList builds the listing query: every field OPTIONAL so partially
// populated entities still come back, filters appended inside the WHERE
// clause, rows keyed by ?uri.
func (s Spec) SelectList(filters Filters, orderBy string) string {
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("SELECT ?uri")
	for _, f := range s.Fields {
		b.WriteString(" ?" + f.Name)
	}
	for _, j := range s.Joins {
		b.WriteString(" ?" + j.Var)
	}
	b.WriteString("\nWHERE {\n")
	fmt.Fprintf(&b, "    ?uri rdf:type <%s> .\n", s.Class)
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "    OPTIONAL { ?uri <%s> ?%s . }\n", f.Predicate, f.Name)
	}
	for _, j := range s.Joins {
		fmt.Fprintf(&b, "    OPTIONAL { ?%s <%s> ?%s . }\n", j.On, j.Predicate, j.Var)
	}
	for _, clause := range filters.clauses() {
		b.WriteString("    " + clause + "\n")
	}
	b.WriteString("}\n")
	if orderBy != "" {
		b.WriteString("ORDER BY ?" + orderBy + "\n")
	}
	return b.String()
}

// SelectByIRI builds the by-identifier lookup. The class-marker triple is
// non-optional: an identifier without it does not "exist".
func (s Spec) SelectByIRI(iri string) (string, error) {
	if !ValidIRI(iri) {
		return "", errors.Wrap(ErrInvalidIRI, iri)
	}
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("SELECT")
	for _, f := range s.Fields {
		b.WriteString(" ?" + f.Name)
	}
	for _, j := range s.Joins {
		b.WriteString(" ?" + j.Var)
	}
	b.WriteString("\nWHERE {\n")
	fmt.Fprintf(&b, "    <%s> rdf:type <%s> .\n", iri, s.Class)
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "    OPTIONAL { <%s> <%s> ?%s . }\n", iri, f.Predicate, f.Name)
	}
	for _, j := range s.Joins {
		fmt.Fprintf(&b, "    OPTIONAL { ?%s <%s> ?%s . }\n", j.On, j.Predicate, j.Var)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// InsertData builds the create statement: the class-marker triple plus one
// triple per set field. Unset optional fields are simply absent; unset
// required fields are an error.
func (s Spec) InsertData(iri string, vals map[string]interface{}) (string, error) {
	if !ValidIRI(iri) {
		return "", errors.Wrap(ErrInvalidIRI, iri)
	}
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("INSERT DATA {\n")
	fmt.Fprintf(&b, "    <%s> rdf:type <%s> .\n", iri, s.Class)
	for _, f := range s.Fields {
		v, ok := vals[f.Name]
		if !ok || unset(f, v) {
			if f.Required {
				return "", errors.Errorf("field %s is required", f.Name)
			}
			continue
		}
		term, err := renderTerm(f, deref(v))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "    <%s> <%s> %s .\n", iri, f.Predicate, term)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// DeleteAll builds the whole-resource delete. Deleting an identifier with no
// triples matches nothing and succeeds as a no-op.
func DeleteAll(iri string) (string, error) {
	if !ValidIRI(iri) {
		return "", errors.Wrap(ErrInvalidIRI, iri)
	}
	return queryPrefixes + fmt.Sprintf(
		"DELETE { <%s> ?p ?o . }\nWHERE { <%s> ?p ?o . }\n", iri, iri), nil
}
