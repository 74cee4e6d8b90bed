// internal/handlers/property/validator.go
package property

import (
	"realty-service/internal/domain/property"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the property_type binding rule to v.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
		return property.ValidType(fl.Field().String())
	})
}
