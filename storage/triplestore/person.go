package triplestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/trelixedu/trelix/core/auth"
	"github.com/trelixedu/trelix/core/person"
)

type personRepository struct {
	client *Client
	ns     string
	spec   Spec
}

// NewPersonRepository maps Person entities under the given ontology
// namespace.
func NewPersonRepository(client *Client, ns string) person.Repository {
	return &personRepository{
		client: client,
		ns:     ns,
		spec: Spec{
			Class: ns + "person",
			Fields: []Field{
				{Name: "name", Predicate: ns + "personName", Kind: String, Required: true},
				{Name: "email", Predicate: ns + "personEmail", Kind: String, Required: true},
				{Name: "password", Predicate: ns + "personPassword", Kind: String, Required: true},
				{Name: "age", Predicate: ns + "personAge", Kind: Int},
				{Name: "role", Predicate: ns + "personRole", Kind: IRI},
			},
		},
	}
}

func (repo *personRepository) decode(iri string, row Row) person.Person {
	p := person.Person{
		IRI:          iri,
		Name:         row.String("name"),
		Email:        row.String("email"),
		PasswordHash: []byte(row.String("password")),
		Age:          row.IntPtr("age"),
		RoleIRI:      row.IRI("role"),
	}
	if p.RoleIRI != "" {
		p.RoleLabel = auth.RoleLabelFromIRI(p.RoleIRI)
	}
	return p
}

func (repo *personRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...person.Person) error {
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("ASK {\n")
	fmt.Fprintf(&b, "    ?uri rdf:type <%s> .\n", repo.spec.Class)
	fmt.Fprintf(&b, "    ?uri <%spersonEmail> \"%s\" .\n", repo.ns, EscapeLiteral(email))
	for _, excl := range excluded {
		if ValidIRI(excl.IRI) {
			fmt.Fprintf(&b, "    FILTER (?uri != <%s>) .\n", excl.IRI)
		}
	}
	b.WriteString("}\n")

	exists, err := repo.client.Ask(ctx, b.String())
	if err != nil {
		return err
	}
	if exists {
		return person.ErrEmailExists
	}
	return nil
}

func (repo *personRepository) CreatePerson(ctx context.Context, p person.Person) (person.Person, error) {
	// mint from the email's readable form so IRIs stay recognizable
	p.IRI = MintIRI(repo.ns, strings.ReplaceAll(p.Email, "@", "_at_"))

	vals := map[string]interface{}{
		"name":     p.Name,
		"email":    p.Email,
		"password": string(p.PasswordHash),
		"age":      p.Age,
		"role":     p.RoleIRI,
	}
	stmt, err := repo.spec.InsertData(p.IRI, vals)
	if err != nil {
		return person.Person{}, err
	}
	if err = repo.client.Update(ctx, stmt); err != nil {
		return person.Person{}, err
	}
	return p, nil
}

func (repo *personRepository) QueryAllPersons(ctx context.Context) ([]person.Person, error) {
	rows, err := repo.client.Select(ctx, repo.spec.SelectList(Filters{}, "name"))
	if err != nil {
		return nil, err
	}
	persons := make([]person.Person, 0, len(rows))
	for _, row := range rows {
		persons = append(persons, repo.decode(row.IRI("uri"), row))
	}
	return persons, nil
}

func (repo *personRepository) GetPersonByIRI(ctx context.Context, iri string) (person.Person, error) {
	query, err := repo.spec.SelectByIRI(iri)
	if err != nil {
		return person.Person{}, person.ErrNotFound
	}
	rows, err := repo.client.Select(ctx, query)
	if err != nil {
		return person.Person{}, err
	}
	if len(rows) == 0 {
		return person.Person{}, person.ErrNotFound
	}
	return repo.decode(iri, rows[0]), nil
}

func (repo *personRepository) GetPersonByEmail(ctx context.Context, email string) (person.Person, error) {
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("SELECT ?uri ?name ?password ?age ?role\nWHERE {\n")
	fmt.Fprintf(&b, "    ?uri rdf:type <%s> .\n", repo.spec.Class)
	fmt.Fprintf(&b, "    ?uri <%spersonEmail> \"%s\" .\n", repo.ns, EscapeLiteral(email))
	fmt.Fprintf(&b, "    OPTIONAL { ?uri <%spersonName> ?name . }\n", repo.ns)
	fmt.Fprintf(&b, "    OPTIONAL { ?uri <%spersonPassword> ?password . }\n", repo.ns)
	fmt.Fprintf(&b, "    OPTIONAL { ?uri <%spersonAge> ?age . }\n", repo.ns)
	fmt.Fprintf(&b, "    OPTIONAL { ?uri <%spersonRole> ?role . }\n", repo.ns)
	b.WriteString("}\n")

	rows, err := repo.client.Select(ctx, b.String())
	if err != nil {
		return person.Person{}, err
	}
	if len(rows) == 0 {
		return person.Person{}, person.ErrNotFound
	}
	p := repo.decode(rows[0].IRI("uri"), rows[0])
	p.Email = email
	return p, nil
}

func (repo *personRepository) UpdatePerson(ctx context.Context, iri string, up person.Update) error {
	changes := map[string]interface{}{
		"name":     up.Name,
		"email":    up.Email,
		"age":      up.Age,
		"role":     up.RoleIRI,
		"password": string(up.PasswordHash),
	}
	stmt, err := repo.spec.Patch(iri, changes)
	if err != nil {
		return err
	}
	if stmt == "" {
		return nil // no changes
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *personRepository) DeletePerson(ctx context.Context, iri string) error {
	stmt, err := DeleteAll(iri)
	if err != nil {
		return err
	}
	return repo.client.Update(ctx, stmt)
}

func (repo *personRepository) QueryRoles(ctx context.Context, excludeAdministrator bool) ([]person.Role, error) {
	var b strings.Builder
	b.WriteString(queryPrefixes)
	b.WriteString("SELECT DISTINCT ?role ?label\nWHERE {\n")
	fmt.Fprintf(&b, "    ?role rdf:type <%sRole> .\n", repo.ns)
	fmt.Fprintf(&b, "    OPTIONAL { ?role <%s> ?label . }\n", RDFSLabel)
	b.WriteString("}\nORDER BY ?label\n")

	rows, err := repo.client.Select(ctx, b.String())
	if err != nil {
		return nil, err
	}
	roles := make([]person.Role, 0, len(rows))
	for _, row := range rows {
		iri := row.IRI("role")
		if iri == "" {
			continue
		}
		label := row.String("label")
		if label == "" {
			label = auth.RoleLabelFromIRI(iri)
		}
		if excludeAdministrator &&
			strings.Contains(strings.ToLower(label), auth.RoleAdministrator) {
			continue
		}
		roles = append(roles, person.Role{IRI: iri, Label: label})
	}
	return roles, nil
}
