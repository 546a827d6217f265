package app

import (
	"errors"

	"github.com/fortifile/fortifile/internal/crypto"
	"github.com/fortifile/fortifile/internal/service"
	"github.com/fortifile/fortifile/internal/validators"
)

// MessageFor translates a service-layer error into the message shown to
// the operator. Unknown errors collapse into [MsgInternalError]; message
// text is presentation only and is never matched programmatically.
func MessageFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrAlreadyRegistered):
		return MsgAlreadyRegistered
	case errors.Is(err, service.ErrWeakPassword):
		return MsgWeakPassword + ": " + policyDetail(err)
	case errors.Is(err, validators.ErrEmptyUsername):
		return validators.ErrEmptyUsername.Error()
	case errors.Is(err, service.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, service.ErrInvalidPassword):
		return MsgInvalidPassword
	case errors.Is(err, service.ErrAccountLocked):
		return MsgAccountLocked
	case errors.Is(err, service.ErrSourceNotFound):
		return MsgSourceNotFound
	case errors.Is(err, service.ErrFileNotFound):
		return MsgFileNotFound
	case errors.Is(err, service.ErrBlobMissing):
		return MsgBlobMissing
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return MsgDecryptionFailed
	case errors.Is(err, service.ErrConfirmationMismatch):
		return MsgConfirmationMismatch
	default:
		return MsgInternalError
	}
}

// policyDetail surfaces the specific password rule that failed, when the
// wrapped chain carries one.
func policyDetail(err error) string {
	for _, policyErr := range []error{
		validators.ErrPasswordTooShort,
		validators.ErrPasswordNeedsUpper,
		validators.ErrPasswordNeedsLower,
		validators.ErrPasswordNeedsDigit,
	} {
		if errors.Is(err, policyErr) {
			return policyErr.Error()
		}
	}
	return "does not meet the password policy"
}
