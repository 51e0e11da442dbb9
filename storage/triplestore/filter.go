package triplestore

import "fmt"

// Filters are the optional read-query refinements: exact status equality and
// a case-insensitive substring search on one designated field. An absent
// input omits its clause entirely, never an empty-string match.
type Filters struct {
	Status      string
	Search      string
	SearchField string // variable the search applies to; defaults to "name"
}

func (f Filters) clauses() []string {
	var out []string
	if f.Status != "" {
		out = append(out, fmt.Sprintf(`FILTER (STR(?status) = "%s") .`, EscapeLiteral(f.Status)))
	}
	if f.Search != "" {
		field := f.SearchField
		if field == "" {
			field = "name"
		}
		out = append(out, fmt.Sprintf(`FILTER (CONTAINS(LCASE(STR(?%s)), LCASE("%s"))) .`, field, EscapeLiteral(f.Search)))
	}
	return out
}
