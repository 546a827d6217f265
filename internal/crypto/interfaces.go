package crypto

// KeyChainService owns all content cryptography. It knows nothing about
// the database, the file registry or users; its only job is to hold the
// persistent data-encryption key and transform payloads with it.
//
// Scheme:
//
//	key  = 32 random bytes, created once and persisted next to the database
//	blob = nonce ‖ ciphertext            (AES-256-GCM, 12-byte nonce)
type KeyChainService interface {
	// Encrypt seals plaintext with the persistent key. The returned blob is
	// self-describing: the random nonce is prepended to the ciphertext.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens a blob produced by Encrypt. Returns
	// [ErrDecryptionFailed] when the blob is too short, was produced with a
	// different key, or was modified after sealing.
	Decrypt(blob []byte) ([]byte, error)

	// KeyPath returns the location of the persisted key file.
	KeyPath() string
}
