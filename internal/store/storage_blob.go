// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/logger"
)

// blobStorage is the filesystem implementation of [BlobStorage].
//
// Encrypted payloads live outside the relational database, one file per
// registered entry, under a single directory created with owner-only
// permissions. Blob names encode the owner, an upload timestamp and a
// sanitized display name, so a directory listing is meaningful during
// integrity checks even without the database.
type blobStorage struct {
	dir    string
	logger *logger.Logger

	// now is swappable in tests so blob names are deterministic.
	now func() time.Time
}

// NewBlobStorage constructs a [BlobStorage] rooted at cfg.SecureDir,
// creating the directory if it does not exist.
func NewBlobStorage(cfg config.Files, logger *logger.Logger) (BlobStorage, error) {
	logger.Debug().Str("dir", cfg.SecureDir).Msg("creating blob storage")

	if err := os.MkdirAll(cfg.SecureDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create blob directory %q: %w", cfg.SecureDir, err)
	}

	return &blobStorage{
		dir:    cfg.SecureDir,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Save writes blob to a new file named
// user_<ownerID>_<timestamp>_<displayName>.enc inside the blob directory
// and returns the resulting path. The timestamp carries microseconds, so
// collisions are rare; if one still happens, a numeric suffix is added
// rather than overwriting.
func (s *blobStorage) Save(ctx context.Context, ownerID int64, displayName string, blob []byte) (string, error) {
	log := logger.FromContext(ctx)

	ts := s.now()
	stamp := fmt.Sprintf("%s_%06d", ts.Format("20060102_150405"), ts.Nanosecond()/1000)
	name := fmt.Sprintf("user_%d_%s_%s.enc", ownerID, stamp, sanitizeBlobName(displayName))
	path := filepath.Join(s.dir, name)

	for suffix := 1; ; suffix++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%d_%s", suffix, name))
	}

	if err := os.WriteFile(path, blob, 0o600); err != nil {
		log.Err(err).
			Str("func", "*blobStorage.Save").
			Int64("owner_id", ownerID).
			Str("path", path).
			Msg("error: writing blob failed")
		return "", fmt.Errorf("failed to write encrypted blob: %w", err)
	}

	return path, nil
}

// Load reads the blob at storagePath in full.
func (s *blobStorage) Load(ctx context.Context, storagePath string) ([]byte, error) {
	log := logger.FromContext(ctx)

	blob, err := os.ReadFile(storagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		log.Err(err).
			Str("func", "*blobStorage.Load").
			Str("path", storagePath).
			Msg("error: reading blob failed")
		return nil, fmt.Errorf("failed to read encrypted blob: %w", err)
	}

	return blob, nil
}

// Remove deletes the blob at storagePath. A missing blob is treated as
// already removed.
func (s *blobStorage) Remove(ctx context.Context, storagePath string) error {
	log := logger.FromContext(ctx)

	if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		log.Err(err).
			Str("func", "*blobStorage.Remove").
			Str("path", storagePath).
			Msg("error: removing blob failed")
		return fmt.Errorf("failed to remove encrypted blob: %w", err)
	}

	return nil
}

// Size returns the on-disk size of the blob in bytes, or zero when the
// blob is missing or unreadable.
func (s *blobStorage) Size(storagePath string) int64 {
	info, err := os.Stat(storagePath)
	if err != nil {
		return 0
	}
	return info.Size()
}

// ListPaths returns the path of every regular file in the blob directory.
func (s *blobStorage) ListPaths(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		log.Err(err).
			Str("func", "*blobStorage.ListPaths").
			Str("dir", s.dir).
			Msg("error: listing blob directory failed")
		return nil, fmt.Errorf("failed to list blob directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}

	return paths, nil
}

// Dir returns the blob directory root.
func (s *blobStorage) Dir() string {
	return s.dir
}

// sanitizeBlobName strips path separators and other characters that are
// unsafe in a file name, keeping blob names flat inside the blob directory.
func sanitizeBlobName(displayName string) string {
	name := filepath.Base(displayName)
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	name = replacer.Replace(name)
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	return name
}
