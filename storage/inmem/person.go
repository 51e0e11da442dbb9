package inmem

import (
	"context"

	"github.com/trelixedu/trelix/core/auth"
	"github.com/trelixedu/trelix/core/person"
)

type personRepository struct {
	db *DB
}

func NewPersonRepository(db *DB) person.Repository {
	return &personRepository{db: db}
}

func (repo *personRepository) roleLabel(iri string) string {
	for _, r := range repo.db.roles {
		if r.IRI == iri {
			return r.Label
		}
	}
	return auth.RoleLabelFromIRI(iri)
}

func (repo *personRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...person.Person) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, p := range repo.db.persons {
		if p.Email != email {
			continue
		}
		skip := false
		for _, ex := range excluded {
			if ex.IRI == p.IRI {
				skip = true
				break
			}
		}
		if !skip {
			return person.ErrEmailExists
		}
	}
	return nil
}

func (repo *personRepository) CreatePerson(ctx context.Context, p person.Person) (person.Person, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p.IRI = repo.db.mint("person")
	if p.RoleLabel == "" {
		p.RoleLabel = repo.roleLabel(p.RoleIRI)
	}
	repo.db.persons[p.IRI] = &p
	return p, nil
}

func (repo *personRepository) QueryAllPersons(ctx context.Context) ([]person.Person, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	persons := make([]person.Person, 0, len(repo.db.persons))
	for _, p := range repo.db.persons {
		persons = append(persons, *p)
	}
	return persons, nil
}

func (repo *personRepository) GetPersonByIRI(ctx context.Context, iri string) (person.Person, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if p, ok := repo.db.persons[iri]; ok {
		return *p, nil
	}
	return person.Person{}, person.ErrNotFound
}

func (repo *personRepository) GetPersonByEmail(ctx context.Context, email string) (person.Person, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, p := range repo.db.persons {
		if p.Email == email {
			return *p, nil
		}
	}
	return person.Person{}, person.ErrNotFound
}

func (repo *personRepository) UpdatePerson(ctx context.Context, iri string, up person.Update) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p, ok := repo.db.persons[iri]
	if !ok {
		return person.ErrNotFound
	}
	// only save set fields
	if up.Name != "" {
		p.Name = up.Name
	}
	if up.Email != "" {
		p.Email = up.Email
	}
	if up.Age != nil {
		p.Age = up.Age
	}
	if up.RoleIRI != "" {
		p.RoleIRI = up.RoleIRI
		p.RoleLabel = repo.roleLabel(up.RoleIRI)
	}
	if up.PasswordHash != nil {
		p.PasswordHash = up.PasswordHash
	}
	return nil
}

func (repo *personRepository) DeletePerson(ctx context.Context, iri string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	delete(repo.db.persons, iri)
	return nil
}

func (repo *personRepository) QueryRoles(ctx context.Context, excludeAdministrator bool) ([]person.Role, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	roles := make([]person.Role, 0, len(repo.db.roles))
	for _, r := range repo.db.roles {
		if excludeAdministrator && r.Label == auth.RoleAdministrator {
			continue
		}
		roles = append(roles, r)
	}
	return roles, nil
}
