package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"

	dto "assignment-tracker.com/assignment-tracker/internal/data_models"
	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
)

var validate = validator.New()

func ValidateCredentials(f *dto.CredentialsForm) error {
	f.Username = strings.TrimSpace(f.Username)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	verr := apperrors.NewValidationError()
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.Add("form", "Invalid form submission")
		return verr
	}

	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Username":
			if fe.Tag() == "required" {
				verr.Add("username", "Username is required")
			} else {
				verr.Add("username", "Username must be at least 3 characters long")
			}
		case "Password":
			if fe.Tag() == "required" {
				verr.Add("password", "Password is required")
			} else {
				verr.Add("password", "Password must be at least 8 characters long")
			}
		}
	}
	return verr
}
