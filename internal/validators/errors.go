package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNeedsUpper = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNeedsLower = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNeedsDigit = errors.New("password must contain at least one digit")
)
