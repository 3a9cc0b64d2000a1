// Package validation checks login and signup input before it is sent to the
// backend. Each field reports only its first failing rule, in field order.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe   = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*()_+=\-{};:"<>,./?]`)
)

// LoginForm is the input of the login command.
type LoginForm struct {
	Email    string `validate:"required,formemail"`
	Password string `validate:"required,min=6"`
}

// SignupForm is the input of the signup command.
type SignupForm struct {
	FirstName string `validate:"required,notblank,nospaces"`
	LastName  string `validate:"required,notblank,nospaces"`
	Email     string `validate:"required,formemail"`
	Password  string `validate:"required,min=6,haslower,hasupper,hasdigit,hasspecial"`
}

// messages maps form, field and tag to the text shown to the user.
var messages = map[string]map[string]string{
	"LoginForm.Email": {
		"required":  "Email is required",
		"formemail": "Invalid email address",
	},
	"LoginForm.Password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"SignupForm.FirstName": {
		"required": "First name is required",
		"notblank": "First name cannot be empty",
		"nospaces": "First name cannot contain spaces",
	},
	"SignupForm.LastName": {
		"required": "Last name is required",
		"notblank": "Last name cannot be empty",
		"nospaces": "Last name cannot contain spaces",
	},
	"SignupForm.Email": {
		"required":  "Email is required",
		"formemail": "Invalid email address",
	},
	"SignupForm.Password": {
		"required":   "Password is required",
		"min":        "Password must be at least 6 characters long",
		"haslower":   "Password must contain at least one lowercase letter",
		"hasupper":   "Password must contain at least one uppercase letter",
		"hasdigit":   "Password must contain at least one number",
		"hasspecial": "Password must contain at least one special character",
	},
}

// Validator wraps the go-playground validator with the form rules.
type Validator struct {
	validator *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	registerCustomValidators(validate)
	return &Validator{validator: validate}
}

// ValidationError lists the user-facing messages of every failing field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func (v *Validator) ValidateLogin(f LoginForm) error {
	return v.validate(f)
}

func (v *Validator) ValidateSignup(f SignupForm) error {
	return v.validate(f)
}

func (v *Validator) validate(form any) error {
	err := v.validator.Struct(form)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	return newValidationError(errs)
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	res := &ValidationError{Messages: make([]string, 0, len(errs))}
	for _, fe := range errs {
		msg, ok := messages[fe.StructNamespace()][fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		res.Messages = append(res.Messages, msg)
	}
	return res
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("formemail", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	validate.RegisterValidation("nospaces", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), " ")
	})
	validate.RegisterValidation("haslower", func(fl validator.FieldLevel) bool {
		return lowerRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("hasupper", func(fl validator.FieldLevel) bool {
		return upperRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("hasdigit", func(fl validator.FieldLevel) bool {
		return digitRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("hasspecial", func(fl validator.FieldLevel) bool {
		return specialRe.MatchString(fl.Field().String())
	})
}
