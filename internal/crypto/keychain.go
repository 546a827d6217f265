// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/logger"
)

// keySize is the length of the persistent data-encryption key: 32 bytes
// selects AES-256.
const keySize = 32

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	keyPath string

	// gcm is built once from the loaded key. AEAD values are safe for
	// concurrent use, so a single instance serves every operation.
	gcm cipher.AEAD
}

// NewKeyChainService constructs a [KeyChainService] bound to the key file
// at cfg.Path. On first run the key file does not exist yet: 32 bytes are
// read from the OS CSPRNG and persisted with owner-only permissions. Every
// later run loads the same key, so blobs encrypted in one session remain
// readable in the next.
//
// Returns [ErrInvalidKeyFile] if an existing key file does not contain
// exactly 32 bytes.
func NewKeyChainService(cfg config.Key, logger *logger.Logger) (KeyChainService, error) {
	key, created, err := loadOrCreateKey(cfg.Path)
	if err != nil {
		logger.Err(err).Str("func", "NewKeyChainService").Str("path", cfg.Path).Msg("error loading encryption key")
		return nil, err
	}

	if created {
		logger.Info().Str("path", cfg.Path).Msg("generated new encryption key")
	} else {
		logger.Debug().Str("path", cfg.Path).Msg("loaded existing encryption key")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &keyChainService{
		keyPath: cfg.Path,
		gcm:     gcm,
	}, nil
}

// loadOrCreateKey reads the key file, generating and persisting a fresh key
// when none exists. The returned bool reports whether a new key was created.
func loadOrCreateKey(path string) ([]byte, bool, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != keySize {
			return nil, false, fmt.Errorf("%w: expected %d bytes, found %d", ErrInvalidKeyFile, keySize, len(key))
		}
		return key, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("read key file: %w", err)
	}

	key = make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, false, fmt.Errorf("generate key: %w", err)
	}

	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, false, fmt.Errorf("persist key file: %w", err)
	}

	return key, true, nil
}

// Encrypt implements [KeyChainService]. A random 12-byte nonce is prepended
// to the ciphertext so that Decrypt can locate it: blob = nonce ‖ ciphertext.
// Returns an error if the random nonce read fails.
func (k *keyChainService) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, k.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal appends to nonce, producing the self-describing blob directly.
	return k.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt implements [KeyChainService]. It splits the blob produced by
// [keyChainService.Encrypt] into nonce and ciphertext, then opens it. An
// authentication-tag mismatch means the blob was sealed with a different
// key or tampered with after sealing; both collapse into
// [ErrDecryptionFailed] so callers cannot distinguish the two cases.
func (k *keyChainService) Decrypt(blob []byte) ([]byte, error) {
	nonceSize := k.gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: blob too short", ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := k.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// KeyPath implements [KeyChainService].
func (k *keyChainService) KeyPath() string {
	return k.keyPath
}
