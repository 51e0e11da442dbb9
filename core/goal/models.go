package goal

import (
	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

const DefaultColor = "#3b82f6"

type Goal struct {
	IRI         string `json:"iri"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD
	Color       string `json:"color,omitempty"`
	Completed   bool   `json:"completed"`
}

type NewGoal struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Color       string `json:"color" validate:"hexcolor_"`
}

func (ng *NewGoal) Validate(validate *validator.Validate) error {
	ng.Title = core.CleanString(ng.Title)
	ng.Description = core.CleanString(ng.Description)
	ng.Date = core.CleanString(ng.Date)
	if ng.Color = core.CleanString(ng.Color); ng.Color == "" {
		ng.Color = DefaultColor
	}
	return validate.Struct(ng)
}

// UpdateGoal is a partial change-set. Completed is a pointer: explicit false
// marks a goal as no longer done and must be written, unlike an omitted field.
type UpdateGoal struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Color       string `json:"color" validate:"hexcolor_"`
	Completed   *bool  `json:"completed"`
}

func (ug *UpdateGoal) Validate(validate *validator.Validate) error {
	ug.Title = core.CleanString(ug.Title)
	ug.Description = core.CleanString(ug.Description)
	ug.Date = core.CleanString(ug.Date)
	ug.Color = core.CleanString(ug.Color)
	return validate.Struct(ug)
}
