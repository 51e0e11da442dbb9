package product

import (
	"github.com/go-playground/validator/v10"

	"github.com/trelixedu/trelix/core"
)

// Product is a purchasable pack of platform content.
type Product struct {
	IRI           string `json:"iri"`
	PackName      string `json:"pack_name"`
	Description   string `json:"description,omitempty"`
	MonetaryValue string `json:"monetary_value,omitempty"`
}

type NewProduct struct {
	PackName      string `json:"pack_name" validate:"required"`
	Description   string `json:"description"`
	MonetaryValue string `json:"monetary_value"`
}

func (np *NewProduct) Validate(validate *validator.Validate) error {
	np.PackName = core.CleanString(np.PackName)
	np.Description = core.CleanString(np.Description)
	np.MonetaryValue = core.CleanString(np.MonetaryValue)
	return validate.Struct(np)
}

type UpdateProduct struct {
	PackName      string `json:"pack_name"`
	Description   string `json:"description"`
	MonetaryValue string `json:"monetary_value"`
}

func (up *UpdateProduct) Validate(validate *validator.Validate) error {
	up.PackName = core.CleanString(up.PackName)
	up.Description = core.CleanString(up.Description)
	up.MonetaryValue = core.CleanString(up.MonetaryValue)
	return validate.Struct(up)
}
