package triplestore

import (
	"strings"
	"testing"
)

func TestPatchPartial(t *testing.T) {
	stmt, err := testSpec.Patch("http://example.org/ns#a_1", map[string]interface{}{
		"status": "Pending",
	})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}

	for _, want := range []string{
		"DELETE {\n    <http://example.org/ns#a_1> <http://example.org/ns#status> ?oldStatus .",
		`INSERT {` + "\n" + `    <http://example.org/ns#a_1> <http://example.org/ns#status> "Pending" .`,
		"<http://example.org/ns#a_1> ?p ?o .",
		"OPTIONAL { <http://example.org/ns#a_1> <http://example.org/ns#status> ?oldStatus . }",
	} {
		if !strings.Contains(stmt, want) {
			t.Errorf("Patch() missing %q in:\n%s", want, stmt)
		}
	}

	// untouched fields never appear
	for _, field := range []string{"activityName", "duration", "startDate", "hasInstructor"} {
		if strings.Contains(stmt, field) {
			t.Errorf("Patch() touched untouched field %s:\n%s", field, stmt)
		}
	}
}

func TestPatchEmptyChangeSet(t *testing.T) {
	tests := []struct {
		name    string
		changes map[string]interface{}
	}{
		{name: "nil map", changes: nil},
		{name: "all unset", changes: map[string]interface{}{"name": "", "duration": (*int)(nil)}},
		{name: "unknown field only", changes: map[string]interface{}{"bogus": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := testSpec.Patch("http://example.org/ns#a_1", tt.changes)
			if err != nil {
				t.Fatalf("Patch() error = %v", err)
			}
			if stmt != "" {
				t.Errorf("Patch() = %q, want empty statement", stmt)
			}
		})
	}
}

func TestPatchExplicitFalse(t *testing.T) {
	f := false
	stmt, err := testSpec.Patch("http://example.org/ns#a_1", map[string]interface{}{"completed": &f})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if !strings.Contains(stmt, `"false"^^<http://www.w3.org/2001/XMLSchema#boolean>`) {
		t.Errorf("Patch() dropped an explicit false:\n%s", stmt)
	}
}

func TestPatchInvalidIRI(t *testing.T) {
	if _, err := testSpec.Patch("not-an-iri", map[string]interface{}{"status": "Active"}); err == nil {
		t.Error("Patch() accepted an invalid subject IRI")
	}
}

func TestPatchEscapesValues(t *testing.T) {
	stmt, err := testSpec.Patch("http://example.org/ns#a_1", map[string]interface{}{
		"name": `x" . } ; DROP`,
	})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if !strings.Contains(stmt, `"x\" . } ; DROP"`) {
		t.Errorf("Patch() failed to escape literal:\n%s", stmt)
	}
}
