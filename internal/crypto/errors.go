package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned when a blob cannot be opened: it is
	// shorter than a nonce, was sealed with a different key, or its
	// authentication tag no longer matches the ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeyFile is returned when the persisted key file exists but
	// does not contain exactly 32 bytes. A truncated or hand-edited key
	// file cannot decrypt anything, so it is rejected outright instead of
	// being silently regenerated.
	ErrInvalidKeyFile = errors.New("key file is invalid")
)
