package preference

import (
	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

// Preference captures one person's study preferences.
type Preference struct {
	IRI          string `json:"iri"`
	Language     string `json:"language"`
	CourseFormat string `json:"course_format,omitempty"`
	Period       string `json:"period,omitempty"`
	Holidays     string `json:"holidays,omitempty"`
	StudyMode    string `json:"study_mode,omitempty"`
	OwnerIRI     string `json:"owner_iri,omitempty"`
}

type NewPreference struct {
	Language     string `json:"language" validate:"required"`
	CourseFormat string `json:"course_format"`
	Period       string `json:"period"`
	Holidays     string `json:"holidays"`
	StudyMode    string `json:"study_mode"`
	OwnerIRI     string `json:"-"`
}

func (np *NewPreference) Validate(validate *validator.Validate) error {
	np.Language = core.CleanString(np.Language)
	np.CourseFormat = core.CleanString(np.CourseFormat)
	np.Period = core.CleanString(np.Period)
	np.Holidays = core.CleanString(np.Holidays)
	np.StudyMode = core.CleanString(np.StudyMode)
	return validate.Struct(np)
}

type UpdatePreference struct {
	Language     string `json:"language"`
	CourseFormat string `json:"course_format"`
	Period       string `json:"period"`
	Holidays     string `json:"holidays"`
	StudyMode    string `json:"study_mode"`
}

func (up *UpdatePreference) Validate(validate *validator.Validate) error {
	up.Language = core.CleanString(up.Language)
	up.CourseFormat = core.CleanString(up.CourseFormat)
	up.Period = core.CleanString(up.Period)
	up.Holidays = core.CleanString(up.Holidays)
	up.StudyMode = core.CleanString(up.StudyMode)
	return validate.Struct(up)
}
