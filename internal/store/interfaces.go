package store

import (
	"context"
	"database/sql"

	"github.com/fortifile/fortifile/models"
)

// DBTX is the subset of database/sql used by the repositories.
// Both [*DB] and *sql.Tx satisfy this interface, so the same repository
// code can run against the shared connection or inside a transaction
// opened by [WithTx].
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepository is the persistence boundary for the single user account
// and its lockout bookkeeping.
type UserRepository interface {
	// CreateUser persists a new user row and returns the stored record
	// with server-assigned fields (UserID, CreatedAt).
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// CountUsers returns the number of user rows. The application treats
	// any value above zero as "registration closed".
	CountUsers(ctx context.Context) (int, error)

	// FindUserByUsername returns the user with the given username or
	// ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID returns the user with the given id or ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FindSingleUser returns the lone account row, or ErrNoUserWasFound
	// when no account has been registered yet. Lockout bookkeeping and
	// operator actions address the account without knowing its username.
	FindSingleUser(ctx context.Context) (models.User, error)

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error

	// UpdateLockoutState persists the failed-attempt counter and the
	// locked flag. Called in the same transaction as the credential check
	// so lockout survives process restarts.
	UpdateLockoutState(ctx context.Context, userID int64, failedAttempts int, locked bool) error

	// DeleteUser removes the user row and returns the number of rows
	// affected.
	DeleteUser(ctx context.Context, userID int64) (int64, error)
}

// FileRepository is the persistence boundary for encrypted-file metadata.
// Every file-scoped read or delete filters by both file id and owner id:
// unauthorized access is indistinguishable from nonexistence by design, and
// this contract must not be "simplified" to an id-only lookup.
type FileRepository interface {
	// CreateFile persists a new file row and returns the stored record
	// with server-assigned fields (FileID, UploadedAt).
	CreateFile(ctx context.Context, file models.File) (models.File, error)

	// FindFileByIDAndOwner returns the file with the given id owned by
	// ownerID, or ErrFileNotFound.
	FindFileByIDAndOwner(ctx context.Context, fileID, ownerID int64) (models.File, error)

	// ListFilesByOwner returns every file row owned by ownerID.
	ListFilesByOwner(ctx context.Context, ownerID int64) ([]models.File, error)

	// ListAllFiles returns every file row regardless of owner. Used by the
	// system integrity check to detect dangling storage paths.
	ListAllFiles(ctx context.Context) ([]models.File, error)

	// DeleteFile removes the row matching both fileID and ownerID and
	// returns the number of rows affected.
	DeleteFile(ctx context.Context, fileID, ownerID int64) (int64, error)

	// DeleteFilesByOwner removes every file row owned by ownerID and
	// returns the number of rows affected.
	DeleteFilesByOwner(ctx context.Context, ownerID int64) (int64, error)
}

// BlobStorage persists encrypted payloads outside the relational database
// so the database only holds lightweight metadata. Paths returned by Save
// are opaque to callers and stored verbatim in the file registry.
type BlobStorage interface {
	// Save writes an encrypted payload for ownerID to a new blob file and
	// returns its storage path.
	Save(ctx context.Context, ownerID int64, displayName string, blob []byte) (string, error)

	// Load reads the blob at storagePath. Returns ErrBlobNotFound when the
	// file is missing from disk.
	Load(ctx context.Context, storagePath string) ([]byte, error)

	// Remove deletes the blob at storagePath. Removing a missing blob is
	// not an error.
	Remove(ctx context.Context, storagePath string) error

	// Size returns the on-disk size in bytes of the blob at storagePath,
	// or zero when the blob is missing.
	Size(storagePath string) int64

	// ListPaths returns the storage path of every blob currently on disk.
	ListPaths(ctx context.Context) ([]string, error)

	// Dir returns the blob directory root.
	Dir() string
}

// EventRepository is the persistence boundary for the append-only audit
// trail.
type EventRepository interface {
	// AppendEvent inserts one audit record.
	AppendEvent(ctx context.Context, event models.Event) error

	// ListEventsByOwner returns up to limit events owned by ownerID,
	// newest first. A non-positive limit returns all of them.
	ListEventsByOwner(ctx context.Context, ownerID int64, limit int) ([]models.Event, error)

	// DeleteEventsByOwner removes every event row owned by ownerID and
	// returns the number of rows affected.
	DeleteEventsByOwner(ctx context.Context, ownerID int64) (int64, error)
}
