package exam

import (
	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

// Badge tiers awarded from the exam's maximum grade.
const (
	BadgeGold   = "GOLD"
	BadgeSilver = "SILVER"
	BadgeBronze = "BRONZE"
)

// BadgeForGrade derives the badge tier from a maximum grade (out of 20).
func BadgeForGrade(maxGrade float64) string {
	switch {
	case maxGrade >= 18:
		return BadgeGold
	case maxGrade >= 12:
		return BadgeSilver
	default:
		return BadgeBronze
	}
}

type Exam struct {
	IRI         string  `json:"iri"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	MaxGrade    float64 `json:"max_grade"`
	ExamDate    string  `json:"exam_date,omitempty"` // YYYY-MM-DD
	Badge       string  `json:"badge,omitempty"`
	CreatorIRI  string  `json:"creator_iri,omitempty"`
}

type NewExam struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	MaxGrade    float64 `json:"max_grade" validate:"gte=0,lte=20"`
	ExamDate    string  `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
	CreatorIRI  string  `json:"-"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.Name = core.CleanString(ne.Name)
	ne.Description = core.CleanString(ne.Description)
	ne.ExamDate = core.CleanString(ne.ExamDate)
	return validate.Struct(ne)
}

// UpdateExam replaces the exam's whole triple set (exams are written as full
// upserts rather than field diffs); every field is therefore required.
type UpdateExam struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	MaxGrade    float64 `json:"max_grade" validate:"gte=0,lte=20"`
	ExamDate    string  `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
}

func (ue *UpdateExam) Validate(validate *validator.Validate) error {
	ue.Name = core.CleanString(ue.Name)
	ue.Description = core.CleanString(ue.Description)
	ue.ExamDate = core.CleanString(ue.ExamDate)
	return validate.Struct(ue)
}
