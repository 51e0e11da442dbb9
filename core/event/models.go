package event

import (
	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

type Event struct {
	IRI         string `json:"iri"`
	Name        string `json:"name"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	CreatorIRI  string `json:"creator_iri,omitempty"`
}

type NewEvent struct {
	Name        string `json:"name" validate:"required"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CreatorIRI  string `json:"-"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Name = core.CleanString(ne.Name)
	ne.Date = core.CleanString(ne.Date)
	ne.Description = core.CleanString(ne.Description)
	ne.Location = core.CleanString(ne.Location)
	return validate.Struct(ne)
}

type UpdateEvent struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	ue.Name = core.CleanString(ue.Name)
	ue.Date = core.CleanString(ue.Date)
	ue.Description = core.CleanString(ue.Description)
	ue.Location = core.CleanString(ue.Location)
	return validate.Struct(ue)
}
