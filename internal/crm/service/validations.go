package service

import (
	govalidator "github.com/go-playground/validator/v10"

	"sales_crm_backend/internal/crm/domain"
	"sales_crm_backend/platform/validator"
)

// RegisterValidations installs the custom status tags the request DTOs use.
// Must be called once on the validator before the engine handles requests.
func RegisterValidations(val *validator.Validator) error {
	if err := val.RegisterValidation("leadstatus", func(fl govalidator.FieldLevel) bool {
		return domain.IsKnownLeadStatus(fl.Field().String())
	}); err != nil {
		return err
	}
	return val.RegisterValidation("dealstatus", func(fl govalidator.FieldLevel) bool {
		return domain.IsKnownDealStatus(fl.Field().String())
	})
}
