package person

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trelixedu/trelix/core"
	"github.com/trelixedu/trelix/core/auth"
)

type Person struct {
	IRI          string `json:"iri"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
	Age          *int   `json:"age,omitempty"`
	RoleIRI      string `json:"role_iri,omitempty"`
	RoleLabel    string `json:"role_label,omitempty"`
}

// SetPassword hashes pwd with bcrypt (salted, slow). The ontology only ever
// stores the hash.
func (p *Person) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

func (p *Person) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(pwd))
}

// Identity resolves the person into the request-scoped caller context.
func (p Person) Identity() auth.Identity {
	label := p.RoleLabel
	if label == "" && p.RoleIRI != "" {
		label = auth.RoleLabelFromIRI(p.RoleIRI)
	}
	return auth.Identity{
		IRI:       p.IRI,
		Name:      p.Name,
		Email:     p.Email,
		RoleIRI:   p.RoleIRI,
		RoleLabel: label,
	}
}

// Role is a labeled role resource from the ontology.
type Role struct {
	IRI   string `json:"iri"`
	Label string `json:"label"`
}

// NewPerson contains information needed to sign up a new Person.
type NewPerson struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Age             *int   `json:"age" validate:"omitempty,gte=1,lte=150"`
	RoleIRI         string `json:"role_iri"`
}

func (np *NewPerson) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	np.Name = core.CleanString(np.Name)
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.RoleIRI = core.CleanString(np.RoleIRI)

	if err := validate.Struct(np); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, np.Email)
}

// UpdatePerson defines what information may be provided to modify an existing
// Person. Empty fields keep their current values.
type UpdatePerson struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Age             *int   `json:"age" validate:"omitempty,gte=1,lte=150"`
	RoleIRI         string `json:"role_iri"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (up *UpdatePerson) Validate(ctx context.Context, orig Person, validate *validator.Validate, svc Service) error {
	up.Name = core.CleanString(up.Name)
	up.Email = core.CleanString(up.Email, true /* lower */)
	up.RoleIRI = core.CleanString(up.RoleIRI)

	if err := validate.Struct(up); err != nil {
		return err
	}
	if up.Email != "" && up.Email != orig.Email {
		return svc.CheckEmailUniqueness(ctx, up.Email, orig)
	}
	return nil
}

// Credentials is the sign-in request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return validate.Struct(c)
}
