package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messagesOf(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return verr.Messages
}

func TestValidateLogin(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		form LoginForm
		want []string
	}{
		{"valid", LoginForm{Email: "ada@example.com", Password: "secret"}, nil},
		{"empty", LoginForm{}, []string{"Email is required", "Password is required"}},
		{"bad email", LoginForm{Email: "ada@", Password: "secret"}, []string{"Invalid email address"}},
		{"short password", LoginForm{Email: "ada@example.com", Password: "12345"}, []string{"Password must be at least 6 characters"}},
		{"email case-insensitive", LoginForm{Email: "ADA@EXAMPLE.COM", Password: "secret"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messagesOf(t, v.ValidateLogin(tt.form)))
		})
	}
}

func TestValidateSignup(t *testing.T) {
	v := New()
	valid := SignupForm{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "Secret1!"}

	tests := []struct {
		name   string
		mutate func(f *SignupForm)
		want   []string
	}{
		{"valid", func(*SignupForm) {}, nil},
		{"first name missing", func(f *SignupForm) { f.FirstName = "" }, []string{"First name is required"}},
		{"first name blank", func(f *SignupForm) { f.FirstName = "   " }, []string{"First name cannot be empty"}},
		{"first name with space", func(f *SignupForm) { f.FirstName = "Ada May" }, []string{"First name cannot contain spaces"}},
		{"last name blank", func(f *SignupForm) { f.LastName = " " }, []string{"Last name cannot be empty"}},
		{"last name with space", func(f *SignupForm) { f.LastName = "Love lace" }, []string{"Last name cannot contain spaces"}},
		{"bad email", func(f *SignupForm) { f.Email = "nope" }, []string{"Invalid email address"}},
		{"short password", func(f *SignupForm) { f.Password = "Ab1!" }, []string{"Password must be at least 6 characters long"}},
		{"no lowercase", func(f *SignupForm) { f.Password = "SECRET1!" }, []string{"Password must contain at least one lowercase letter"}},
		{"no uppercase", func(f *SignupForm) { f.Password = "secret1!" }, []string{"Password must contain at least one uppercase letter"}},
		{"no digit", func(f *SignupForm) { f.Password = "Secret!!" }, []string{"Password must contain at least one number"}},
		{"no special", func(f *SignupForm) { f.Password = "Secret12" }, []string{"Password must contain at least one special character"}},
		{"letters are not special", func(f *SignupForm) { f.Password = "Abcxyz12" }, []string{"Password must contain at least one special character"}},
		{"bracket is not special", func(f *SignupForm) { f.Password = "Secret1[" }, []string{"Password must contain at least one special character"}},
		{"backslash is not special", func(f *SignupForm) { f.Password = `Secret1\` }, []string{"Password must contain at least one special character"}},
		{"hyphen is special", func(f *SignupForm) { f.Password = "Secret1-" }, nil},
		{"brace is special", func(f *SignupForm) { f.Password = "Secret1{" }, nil},
		{"equals is special", func(f *SignupForm) { f.Password = "Secret1=" }, nil},
		{
			"field order",
			func(f *SignupForm) { *f = SignupForm{LastName: "a b", Password: "short"} },
			[]string{
				"First name is required",
				"Last name cannot contain spaces",
				"Email is required",
				"Password must be at least 6 characters long",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			assert.Equal(t, tt.want, messagesOf(t, v.ValidateSignup(f)))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Messages: []string{"Email is required", "Password is required"}}
	assert.Equal(t, "Email is required, Password is required", err.Error())
}
