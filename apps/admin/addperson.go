package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core"
	"github.com/trelixedu/trelix/core/person"
)

// addPerson updates or creates a person. An empty role leaves an existing
// person's role untouched and creates new persons without one.
func (cli *commandLine) addPerson(name, email, pwd, role string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	role = core.CleanString(role, true /* lower */)

	var roleIRI string
	if role != "" {
		var err error
		if roleIRI, err = cli.resolveRole(ctx, role); err != nil {
			return err
		}
	}

	p, err := cli.personRepo.GetPersonByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) != person.ErrNotFound {
			return err
		}
		p = person.Person{Name: name, Email: email, RoleIRI: roleIRI}
		if err = p.SetPassword(pwd); err != nil {
			return err
		}
		if p, err = cli.personRepo.CreatePerson(ctx, p); err != nil {
			return err
		}
		logger.Printf("person created: %s", p.IRI)
		return nil
	}

	if err = p.SetPassword(pwd); err != nil {
		return err
	}
	up := person.Update{Name: name, RoleIRI: roleIRI, PasswordHash: p.PasswordHash}
	if err = cli.personRepo.UpdatePerson(ctx, p.IRI, up); err != nil {
		return err
	}
	logger.Printf("person updated: %s", p.IRI)
	return nil
}

// resolveRole maps a role label onto the role resource held in the ontology.
func (cli *commandLine) resolveRole(ctx context.Context, label string) (string, error) {
	roles, err := cli.personRepo.QueryRoles(ctx, false /* excludeAdministrator */)
	if err != nil {
		return "", err
	}
	for _, r := range roles {
		if r.Label == label {
			return r.IRI, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", label)
}
