package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"userhub/internal/clients/userapi"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Draft is the not-yet-submitted name/email pair held by the form.
type Draft struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// Validate mirrors the form's input constraints: both fields required, email well formed.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (d Draft) input() userapi.UserInput {
	return userapi.UserInput{
		Name:  strings.TrimSpace(d.Name),
		Email: strings.TrimSpace(d.Email),
	}
}
