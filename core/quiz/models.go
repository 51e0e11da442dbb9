package quiz

import (
	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

type Quiz struct {
	IRI        string `json:"iri"`
	Title      string `json:"title"`
	CreatorIRI string `json:"creator_iri,omitempty"`
}

// Score is one person's recorded result on a quiz. The person edge may
// dangle (deleted account); PersonName is then empty and consumers fall back
// to the IRI.
type Score struct {
	IRI        string `json:"iri"`
	QuizIRI    string `json:"quiz_iri"`
	PersonIRI  string `json:"person_iri"`
	PersonName string `json:"person_name,omitempty"`
	Points     int    `json:"points"`
}

type NewQuiz struct {
	Title      string `json:"title" validate:"required"`
	CreatorIRI string `json:"-"`
}

func (nq *NewQuiz) Validate(validate *validator.Validate) error {
	nq.Title = core.CleanString(nq.Title)
	return validate.Struct(nq)
}

type UpdateQuiz struct {
	Title string `json:"title"`
}

func (uq *UpdateQuiz) Validate(validate *validator.Validate) error {
	uq.Title = core.CleanString(uq.Title)
	return validate.Struct(uq)
}

type NewScore struct {
	Points    int    `json:"points" validate:"gte=0"`
	PersonIRI string `json:"-"`
}

func (ns *NewScore) Validate(validate *validator.Validate) error {
	return validate.Struct(ns)
}
