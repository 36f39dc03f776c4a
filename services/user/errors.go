package user

import (
	"errors"
	"strings"

	userRepo "auditorium/database/repository/user"
	"auditorium/services/errs"

	"github.com/go-playground/validator/v10"
)

func storeError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errs.KindOf(err) != 0 {
		return err
	}
	if errors.Is(err, userRepo.ErrNotFound) {
		return errs.NewNotFoundError("%s not found", what)
	}
	return errs.NewDependencyError("user store failure", err)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return errs.NewValidationError("%s is required", lowerFirst(fe.Field()))
		case "email":
			return errs.NewValidationError("email is not a valid address")
		case "min":
			return errs.NewValidationError("%s must be at least %s characters", lowerFirst(fe.Field()), fe.Param())
		}
		return errs.NewValidationError("invalid value for %s", lowerFirst(fe.Field()))
	}
	return errs.NewValidationError("invalid input: %v", err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
