package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/models"
)

// userRepository is the SQLite-backed implementation of [UserRepository].
// It handles account creation, lookup, and lockout bookkeeping against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, operation-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     DBTX
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database handle and logger. The handle may be the shared [*DB] connection
// or a transaction opened by [DB.WithTx].
func NewUserRepository(db DBTX, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - SQLite constraint violation (unique username) → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash)

	// scan saved user from db
	if err := row.Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.FailedAttempts, &user.Locked, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: user insert failed")

		switch sqliteError(err) {
		case sqlite3.ErrConstraint:
			return models.User{}, ErrUsernameAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// CountUsers returns the total number of user rows. FortiFile enforces the
// single-user invariant in the service layer by rejecting registration when
// this count is non-zero.
func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CountUsers").Msg("error: counting users failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// FindUserByUsername retrieves the user record whose username matches the
// one provided.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByUsername, username)

	if err := row.Scan(&foundUser.UserID, &foundUser.Username, &foundUser.PasswordHash, &foundUser.FailedAttempts, &foundUser.Locked, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// FindUserByID retrieves the user record with the given id. Error handling
// matches [userRepository.FindUserByUsername].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := row.Scan(&foundUser.UserID, &foundUser.Username, &foundUser.PasswordHash, &foundUser.FailedAttempts, &foundUser.Locked, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// FindSingleUser retrieves the lone account row. The users table never
// holds more than one row; ORDER BY id keeps the lookup deterministic all
// the same.
func (r *userRepository) FindSingleUser(ctx context.Context) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findSingleUser)

	if err := row.Scan(&foundUser.UserID, &foundUser.Username, &foundUser.PasswordHash, &foundUser.FailedAttempts, &foundUser.Locked, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindSingleUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// UpdatePasswordHash replaces the stored credential hash for the given user.
// Returns [ErrNoUserWasFound] if no row was updated.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updatePasswordHash, passwordHash, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Int64("user_id", userID).Msg("error: updating password hash failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// UpdateLockoutState persists the failed-attempt counter and the locked
// flag for the given user. Returns [ErrNoUserWasFound] if no row was updated.
func (r *userRepository) UpdateLockoutState(ctx context.Context, userID int64, failedAttempts int, locked bool) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateLockoutState, failedAttempts, locked, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateLockoutState").
			Int64("user_id", userID).
			Int("failed_attempts", failedAttempts).
			Bool("locked", locked).
			Msg("error: updating lockout state failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// DeleteUser removes the user row with the given id and returns the number
// of rows affected (zero when the user does not exist).
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error: deleting user failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
