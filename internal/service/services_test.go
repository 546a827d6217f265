// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/crypto"
	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/internal/store"
)

// testEnv is a full application wired over a throwaway installation in a
// temp directory: real SQLite database, real key file, real blob dir.
type testEnv struct {
	services *Services
	storages *store.Storages
	cfg      config.StructuredConfig
	dir      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := config.StructuredConfig{
		App: config.App{
			MaxLoginAttempts: 3,
			BcryptCost:       bcrypt.MinCost,
		},
		Storage: config.Storage{
			DB:    config.DB{Path: filepath.Join(dir, "fortifile.db")},
			Files: config.Files{SecureDir: filepath.Join(dir, "secure_files")},
			Key:   config.Key{Path: filepath.Join(dir, "fortifile.key")},
		},
	}

	log := logger.Nop()

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	require.NoError(t, err)
	t.Cleanup(func() { storages.DB.Close() })

	keychain, err := crypto.NewKeyChainService(cfg.Storage.Key, log)
	require.NoError(t, err)

	return &testEnv{
		services: NewServices(storages, keychain, cfg, log),
		storages: storages,
		cfg:      cfg,
		dir:      dir,
	}
}

// reopen simulates a process restart: the database handle is closed and
// the whole service stack is rebuilt over the same installation.
func (e *testEnv) reopen(t *testing.T) *testEnv {
	t.Helper()

	require.NoError(t, e.storages.DB.Close())

	log := logger.Nop()

	storages, err := store.NewStorages(context.Background(), e.cfg.Storage, log)
	require.NoError(t, err)
	t.Cleanup(func() { storages.DB.Close() })

	keychain, err := crypto.NewKeyChainService(e.cfg.Storage.Key, log)
	require.NoError(t, err)

	return &testEnv{
		services: NewServices(storages, keychain, e.cfg, log),
		storages: storages,
		cfg:      e.cfg,
		dir:      e.dir,
	}
}

// writeSourceFile drops a plaintext file outside the managed directories
// and returns its path.
func (e *testEnv) writeSourceFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

// TestScenario_FirstSessionLifecycle walks the happy path of a first
// session: register, log in, store a document, list it, retrieve it,
// delete it.
func TestScenario_FirstSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.services.AuthService.RegisterUser(ctx, "victor", "Str0ngPass")
	require.NoError(t, err)
	require.Positive(t, user.UserID)

	auth, err := env.services.AuthService.AuthenticateUser(ctx, "victor", "Str0ngPass")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, auth.UserID)
	assert.False(t, auth.Locked)

	content := []byte("a private document")
	src := env.writeSourceFile(t, "doc.txt", content)

	uploaded, err := env.services.FileService.UploadFile(ctx, user.UserID, src, "doc.txt")
	require.NoError(t, err)

	files, err := env.services.FileService.GetUserFiles(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "doc.txt", files[0].DisplayName)

	out := filepath.Join(env.dir, "restored.txt")
	require.NoError(t, env.services.FileService.DownloadFile(ctx, user.UserID, uploaded.FileID, out))

	restored, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, content, restored)

	require.NoError(t, env.services.FileService.DeleteFile(ctx, user.UserID, uploaded.FileID))

	files, err = env.services.FileService.GetUserFiles(ctx, user.UserID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

// TestScenario_LockoutAndRecovery locks the account with three bad
// passwords, confirms the lock persists, then recovers via the operator
// reset and logs in.
func TestScenario_LockoutAndRecovery(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.services.AuthService.RegisterUser(ctx, "victor", "Str0ngPass")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		result, err := env.services.AuthService.AuthenticateUser(ctx, "victor", "WrongPass1")
		assert.ErrorIs(t, err, ErrInvalidPassword)
		assert.False(t, result.Locked)
	}

	// the third failure locks; the locking attempt itself still reports
	// the password error, with the lock visible on the result
	result, err := env.services.AuthService.AuthenticateUser(ctx, "victor", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.True(t, result.Locked)
	assert.Zero(t, result.RemainingAttempts)

	// even the right password is refused while locked
	_, err = env.services.AuthService.AuthenticateUser(ctx, "victor", "Str0ngPass")
	assert.ErrorIs(t, err, ErrAccountLocked)

	require.NoError(t, env.services.AuthService.ResetFailedAttempts(ctx))

	auth, err := env.services.AuthService.AuthenticateUser(ctx, "victor", "Str0ngPass")
	require.NoError(t, err)
	assert.False(t, auth.Locked)
	assert.Equal(t, 3, auth.RemainingAttempts)
}
