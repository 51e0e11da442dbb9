package person

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core"
)

var (
	ErrNotFound           = errors.New("person not found")
	ErrEmailExists        = errors.New("a person with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	// Update carries the partial field set a repository applies to an
	// existing person. Zero-valued fields are left untouched.
	Update struct {
		Name         string
		Email        string
		Age          *int
		RoleIRI      string
		PasswordHash []byte
	}

	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Person) error
		CreatePerson(ctx context.Context, p Person) (Person, error)
		QueryAllPersons(ctx context.Context) ([]Person, error)
		GetPersonByIRI(ctx context.Context, iri string) (Person, error)
		// GetPersonByEmail returns the person including the password hash.
		GetPersonByEmail(ctx context.Context, email string) (Person, error)
		UpdatePerson(ctx context.Context, iri string, up Update) error
		DeletePerson(ctx context.Context, iri string) error
		// QueryRoles lists the labeled role resources of the ontology.
		QueryRoles(ctx context.Context, excludeAdministrator bool) ([]Role, error)
	}

	Service interface {
		SignUp(ctx context.Context, np NewPerson) (Person, error)
		SignIn(ctx context.Context, creds Credentials) (Person, error)
		QueryAll(ctx context.Context) ([]Person, error)
		GetByIRI(ctx context.Context, iri string) (Person, error)
		GetByEmail(ctx context.Context, email string) (Person, error)
		Update(ctx context.Context, iri string, up UpdatePerson) (Person, error)
		Delete(ctx context.Context, iri string) error
		AvailableRoles(ctx context.Context, excludeAdministrator bool) ([]Role, error)
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Person) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		appName string
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		appName: conf.AppName,
	}
}

func (svc *service) CheckEmailUniqueness(ctx context.Context, email string, excluded ...Person) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, excluded...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) SignUp(ctx context.Context, np NewPerson) (Person, error) {
	p := Person{
		Name:    np.Name,
		Email:   np.Email,
		Age:     np.Age,
		RoleIRI: np.RoleIRI,
	}
	if err := p.SetPassword(np.Password); err != nil {
		return Person{}, err
	}

	p, err := svc.repo.CreatePerson(ctx, p)
	if err != nil {
		return Person{}, err
	}
	svc.sendWelcomeMail(p)
	return p, nil
}

func (svc *service) SignIn(ctx context.Context, creds Credentials) (Person, error) {
	p, err := svc.repo.GetPersonByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Person{}, ErrInvalidCredentials
		}
		return Person{}, errors.Wrap(err, "finding person by email")
	}
	if err = p.CheckPassword(creds.Password); err != nil {
		return Person{}, ErrInvalidCredentials
	}
	return p, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Person, error) {
	return svc.repo.QueryAllPersons(ctx)
}

func (svc *service) GetByIRI(ctx context.Context, iri string) (Person, error) {
	return svc.repo.GetPersonByIRI(ctx, iri)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (Person, error) {
	return svc.repo.GetPersonByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) Update(ctx context.Context, iri string, up UpdatePerson) (Person, error) {
	update := Update{
		Name:    up.Name,
		Email:   up.Email,
		Age:     up.Age,
		RoleIRI: up.RoleIRI,
	}
	if up.Password != "" {
		var p Person
		if err := p.SetPassword(up.Password); err != nil {
			return Person{}, err
		}
		update.PasswordHash = p.PasswordHash
	}
	if err := svc.repo.UpdatePerson(ctx, iri, update); err != nil {
		return Person{}, err
	}
	return svc.repo.GetPersonByIRI(ctx, iri)
}

func (svc *service) Delete(ctx context.Context, iri string) error {
	return svc.repo.DeletePerson(ctx, iri)
}

func (svc *service) AvailableRoles(ctx context.Context, excludeAdministrator bool) ([]Role, error) {
	return svc.repo.QueryRoles(ctx, excludeAdministrator)
}

func (svc *service) sendWelcomeMail(p Person) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: p.Name, Address: p.Email}},
		Subject: "Welcome",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour %s account has been created. You can now sign in with your email address.",
			p.Name, svc.appName,
		),
	})
}
