package app

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fortifile/fortifile/internal/crypto"
	"github.com/fortifile/fortifile/internal/service"
	"github.com/fortifile/fortifile/internal/validators"
)

func TestMessageFor_KnownErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "already registered", err: service.ErrAlreadyRegistered, want: MsgAlreadyRegistered},
		{name: "user not found", err: service.ErrUserNotFound, want: MsgUserNotFound},
		{name: "invalid password", err: service.ErrInvalidPassword, want: MsgInvalidPassword},
		{name: "account locked", err: service.ErrAccountLocked, want: MsgAccountLocked},
		{name: "source not found", err: service.ErrSourceNotFound, want: MsgSourceNotFound},
		{name: "file not found", err: service.ErrFileNotFound, want: MsgFileNotFound},
		{name: "blob missing", err: service.ErrBlobMissing, want: MsgBlobMissing},
		{name: "decryption failed", err: crypto.ErrDecryptionFailed, want: MsgDecryptionFailed},
		{name: "confirmation mismatch", err: service.ErrConfirmationMismatch, want: MsgConfirmationMismatch},
		{name: "unknown error", err: errors.New("driver exploded"), want: MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageFor(tt.err); got != tt.want {
				t.Errorf("MessageFor(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestMessageFor_WrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", service.ErrAccountLocked)
	if got := MessageFor(wrapped); got != MsgAccountLocked {
		t.Errorf("MessageFor(wrapped) = %q, want %q", got, MsgAccountLocked)
	}
}

func TestMessageFor_WeakPasswordCarriesPolicyDetail(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrWeakPassword, validators.ErrPasswordNeedsDigit)

	got := MessageFor(err)
	if !strings.HasPrefix(got, MsgWeakPassword) {
		t.Errorf("expected message to start with %q, got %q", MsgWeakPassword, got)
	}
	if !strings.Contains(got, "digit") {
		t.Errorf("expected policy detail in message, got %q", got)
	}
}
