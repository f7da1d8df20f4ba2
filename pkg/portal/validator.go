package portal

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
	errors   map[string]string
}

func GetDefaultValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	registerCustomValidations(v)

	return &Validator{
		validate: v,
		errors:   map[string]string{},
	}
}

// Passes validates the given struct and records its failures. The recorded
// failures are replaced on every call.
func (v *Validator) Passes(abstract any) (bool, error) {
	v.errors = map[string]string{}

	err := v.validate.Struct(abstract)
	if err == nil {
		return true, nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		v.errors["struct"] = invalid.Error()

		return false, err
	}

	var fails validator.ValidationErrors
	if errors.As(err, &fails) {
		for _, fail := range fails {
			v.errors[fail.Namespace()] = fail.Tag()
		}
	}

	return false, err
}

func (v *Validator) Rejects(abstract any) (bool, error) {
	ok, err := v.Passes(abstract)

	return !ok, err
}

func (v *Validator) GetErrors() map[string]string {
	return v.errors
}

func (v *Validator) GetErrorsAsJson() string {
	data, err := json.Marshal(v.errors)

	if err != nil {
		return ""
	}

	return string(data)
}
