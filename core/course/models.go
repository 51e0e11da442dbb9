package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

// Course is one teaching module: a named unit of course content.
type Course struct {
	IRI        string `json:"iri"`
	Name       string `json:"name"`
	CourseName string `json:"course_name,omitempty"`
	Content    string `json:"content,omitempty"`
}

type NewCourse struct {
	Name       string `json:"name" validate:"required"`
	CourseName string `json:"course_name"`
	Content    string `json:"content"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.CourseName = core.CleanString(nc.CourseName)
	return validate.Struct(nc)
}

type UpdateCourse struct {
	Name       string `json:"name"`
	CourseName string `json:"course_name"`
	Content    string `json:"content"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.CourseName = core.CleanString(uc.CourseName)
	return validate.Struct(uc)
}
