package activity

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

// Activity statuses as stored in the ontology.
const (
	StatusActive    = "Active"
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

type Activity struct {
	IRI            string    `json:"iri"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Duration       *int      `json:"duration,omitempty"` // minutes
	StartDate      time.Time `json:"start_date,omitempty"`
	EndDate        time.Time `json:"end_date,omitempty"`
	Status         string    `json:"status,omitempty"`
	Type           string    `json:"type,omitempty"`
	InstructorIRI  string    `json:"instructor_iri,omitempty"`
	InstructorName string    `json:"instructor_name,omitempty"`
}

// NewActivity contains information needed to create a new Activity. The
// instructor is always the authenticated creator; only admins may override it.
type NewActivity struct {
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description"`
	Duration      *int      `json:"duration" validate:"omitempty,gte=1"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	InstructorIRI string    `json:"-"`
}

func (na *NewActivity) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Description = core.CleanString(na.Description)
	na.Status = core.CleanString(na.Status)
	na.Type = core.CleanString(na.Type)
	return validate.Struct(na)
}

// UpdateActivity is a partial change-set; empty fields keep their current
// values.
type UpdateActivity struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Duration      *int      `json:"duration" validate:"omitempty,gte=1"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	InstructorIRI string    `json:"instructor_iri"`
}

func (ua *UpdateActivity) Validate(validate *validator.Validate) error {
	ua.Name = core.CleanString(ua.Name)
	ua.Description = core.CleanString(ua.Description)
	ua.Status = core.CleanString(ua.Status)
	ua.Type = core.CleanString(ua.Type)
	ua.InstructorIRI = core.CleanString(ua.InstructorIRI)
	return validate.Struct(ua)
}

// QueryFilter composes the optional listing refinements. Search does a
// case-insensitive match on the activity name.
type QueryFilter struct {
	Status string `query:"status"`
	Search string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Status = core.CleanString(qf.Status)
	qf.Search = core.CleanString(qf.Search)
}
