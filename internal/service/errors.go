package service

import "errors"

var (
	ErrAlreadyRegistered = errors.New("an account is already registered")
	ErrWeakPassword      = errors.New("password does not meet the policy")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrAccountLocked     = errors.New("account is locked")

	ErrSourceNotFound = errors.New("source file not found")
	// ErrFileNotFound mirrors the store sentinel at the service boundary
	// so presentation code does not import the store package.
	ErrFileNotFound = errors.New("file not found")
	ErrBlobMissing  = errors.New("encrypted file is missing from storage")

	ErrConfirmationMismatch = errors.New("reset confirmation phrase does not match")
)
