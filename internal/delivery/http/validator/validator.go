// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "coderr/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *playground.Validate
}

// New returns a request validator backed by struct tags.
func New() *echoValidator {
	return &echoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Tag violations surface as a single
// validation failure carrying the first offending field.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domainerrors.ErrValidationFailed.WithDetails(fieldErrs[0].Error())
		}

		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
