package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("occupancy_status", func(fl validator.FieldLevel) bool {
		return domain.OccupancyStatus(fl.Field().String()).IsValid()
	})
}

// Validate checks struct tags and converts failures to INVALID_REQUEST
// with the offending fields in details
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ErrInvalidRequest
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(fields)
}

// GetValidator - the shared instance for custom registrations
func GetValidator() *validator.Validate {
	return validate
}
