package validators

import (
	"context"
	"strings"
	"unicode"

	"github.com/fortifile/fortifile/models"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// minPasswordLength is counted in runes, not bytes, so multibyte passwords
// are not penalized.
const minPasswordLength = 8

type CredentialsValidator struct {
}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(_ context.Context, creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if strings.TrimSpace(creds.Username) == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if err := validatePasswordStrength(creds.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePasswordStrength enforces the password policy: at least 8
// characters with at least one uppercase letter, one lowercase letter and
// one digit. The first unmet rule is reported.
func validatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return ErrPasswordNeedsUpper
	case !hasLower:
		return ErrPasswordNeedsLower
	case !hasDigit:
		return ErrPasswordNeedsDigit
	}

	return nil
}
