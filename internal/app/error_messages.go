// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

// Package app contains shared application-layer constants used across the
// FortiFile command surface.
//
// All Msg* constants are human-readable message strings shown to the
// operator to describe the outcome of an operation. Keeping them in one
// place ensures consistent wording throughout the program.
package app

const (
	// MsgAlreadyRegistered is shown when registration is attempted while an
	// account already exists. FortiFile manages exactly one account.
	MsgAlreadyRegistered = "an account is already registered on this installation"

	// MsgWeakPassword is shown when a new password fails the policy. The
	// concrete rule that failed is appended separately.
	MsgWeakPassword = "password is too weak"

	// MsgUserNotFound is shown when no account matches the supplied
	// username, or no account exists at all.
	MsgUserNotFound = "user not found"

	// MsgInvalidPassword is shown when the supplied password does not match
	// the stored credential.
	MsgInvalidPassword = "invalid password"

	// MsgAccountLocked is shown when the account is locked after too many
	// failed login attempts.
	MsgAccountLocked = "account is locked; reset failed attempts to regain access"

	// MsgSourceNotFound is shown when the file selected for upload does not
	// exist.
	MsgSourceNotFound = "source file does not exist"

	// MsgFileNotFound is shown when a file id does not match any file owned
	// by the current user.
	MsgFileNotFound = "file not found"

	// MsgBlobMissing is shown when a registered file has lost its encrypted
	// blob on disk.
	MsgBlobMissing = "encrypted file is missing from storage; run verify for details"

	// MsgDecryptionFailed is shown when an encrypted blob cannot be
	// authenticated against the current key.
	MsgDecryptionFailed = "file could not be decrypted; it may be corrupted or belong to a different key"

	// MsgConfirmationMismatch is shown when the reset confirmation phrase
	// is wrong.
	MsgConfirmationMismatch = "reset aborted: confirmation phrase does not match"

	// MsgInternalError is shown for unexpected failures the operator cannot
	// resolve directly.
	MsgInternalError = "internal error; see the log file for details"
)
