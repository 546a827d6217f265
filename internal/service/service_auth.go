// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/internal/store"
	"github.com/fortifile/fortifile/internal/utils"
	"github.com/fortifile/fortifile/internal/validators"
	"github.com/fortifile/fortifile/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification with persistent
// lockout, password changes and account removal, using bcrypt for password
// hashing and the audit trail for every security-relevant action.
type authService struct {
	// db owns transactions: credential checks and their lockout mutation
	// must land atomically, as must the account-deletion cascade.
	db *store.DB

	userRepository  store.UserRepository
	fileRepository  store.FileRepository
	eventRepository store.EventRepository

	// blobStorage is needed for best-effort blob cleanup during account
	// deletion.
	blobStorage store.BlobStorage

	// validator enforces the username and password policy on input.
	validator validators.Validator

	// maxAttempts is the number of consecutive failed logins that locks
	// the account.
	maxAttempts int

	// bcryptCost tunes password hashing. Tests lower it to keep hashing
	// cheap.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given storages and
// populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(storages *store.Storages, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		db:              storages.DB,
		userRepository:  storages.UserRepository,
		fileRepository:  storages.FileRepository,
		eventRepository: storages.EventRepository,
		blobStorage:     storages.BlobStorage,
		validator:       validators.NewCredentialsValidator(),
		maxAttempts:     cfg.MaxLoginAttempts,
		bcryptCost:      cfg.BcryptCost,
		logger:          logger,
	}
}

// UserExists reports whether an account has been registered.
func (a *authService) UserExists(ctx context.Context) (bool, error) {
	count, err := a.userRepository.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("user count failed: %w", err)
	}
	return count > 0, nil
}

// RegisterUser creates the single user account.
//
// It enforces the username and password policy, rejects registration when
// an account already exists, hashes the password with bcrypt, and records
// the registration in the audit trail.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - [validators.ErrEmptyUsername] if the username is blank.
//   - [ErrWeakPassword] (wrapping the specific policy violation) if the
//     password does not satisfy the policy.
//   - [ErrAlreadyRegistered] if an account already exists.
func (a *authService) RegisterUser(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	creds := models.Credentials{Username: username, Password: password}
	if err := a.validator.Validate(ctx, creds, validators.FieldUsername); err != nil {
		log.Error().Str("username", username).Msg("invalid username provided")
		return models.User{}, err
	}
	if err := a.validator.Validate(ctx, creds, validators.FieldPassword); err != nil {
		log.Error().Str("username", username).Msg("password policy violation")
		return models.User{}, fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	exists, err := a.UserExists(ctx)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrAlreadyRegistered
	}

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			return models.User{}, ErrAlreadyRegistered
		}
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.appendEvent(ctx, a.eventRepository, registeredUser.UserID, "User account created")

	return registeredUser, nil
}

// AuthenticateUser verifies the supplied credentials against the stored
// account and maintains the persistent lockout state.
//
// Semantics:
//   - No account registered, or the username does not match the account →
//     [ErrUserNotFound]. A mismatched username still counts as a failed
//     attempt against the account.
//   - Account locked → [ErrAccountLocked]; the counter is not incremented.
//   - Wrong password → [ErrInvalidPassword]; the failed counter is
//     incremented, and reaching the limit locks the account in the same
//     transaction. The locking attempt itself still reports
//     [ErrInvalidPassword], with Locked set on the result; only later
//     attempts see [ErrAccountLocked].
//   - Success → counter resets to zero.
//
// The returned AuthResult is populated even when an error is returned, so
// callers can show remaining attempts after a failure. Counter mutation and
// credential check commit together; a failed login that crashes mid-way
// never loses or double-counts an attempt.
func (a *authService) AuthenticateUser(ctx context.Context, username, password string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	var result models.AuthResult
	var authErr error

	err := a.db.WithTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		users := store.NewUserRepository(tx, a.logger)
		events := store.NewEventRepository(tx, a.logger)

		account, err := users.FindSingleUser(ctx)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				authErr = ErrUserNotFound
				return nil
			}
			return err
		}

		result = models.AuthResult{
			UserID:            account.UserID,
			Username:          account.Username,
			Locked:            account.Locked,
			RemainingAttempts: a.remaining(account.FailedAttempts),
		}

		if account.Locked {
			log.Warn().Str("username", username).Msg("login attempt on locked account")
			authErr = ErrAccountLocked
			return nil
		}

		usernameMatches := account.Username == username
		if usernameMatches && utils.VerifyPassword(account.PasswordHash, password) {
			if account.FailedAttempts > 0 {
				if err := users.UpdateLockoutState(ctx, account.UserID, 0, false); err != nil {
					return err
				}
			}
			result.RemainingAttempts = a.maxAttempts
			a.appendEvent(ctx, events, account.UserID, "Login successful")
			return nil
		}

		attempts := account.FailedAttempts + 1
		locked := attempts >= a.maxAttempts

		if err := users.UpdateLockoutState(ctx, account.UserID, attempts, locked); err != nil {
			return err
		}

		a.appendEvent(ctx, events, account.UserID,
			fmt.Sprintf("Failed login attempt (%d/%d)", attempts, a.maxAttempts))
		if locked {
			a.appendEvent(ctx, events, account.UserID,
				fmt.Sprintf("Account locked after %d failed login attempts", a.maxAttempts))
			log.Warn().Str("username", username).Msg("account locked")
		}

		result.Locked = locked
		result.RemainingAttempts = a.remaining(attempts)
		if usernameMatches {
			authErr = ErrInvalidPassword
		} else {
			authErr = ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("authentication transaction failed")
		return models.AuthResult{}, fmt.Errorf("authentication failed: %w", err)
	}

	return result, authErr
}

// ChangePassword replaces the account password after re-verifying the old
// one. The lockout counter is deliberately left untouched: a logged-in
// user fumbling their old password is not a break-in attempt.
//
// Returns:
//   - [ErrUserNotFound] if the account does not exist.
//   - [ErrAccountLocked] if the account is locked.
//   - [ErrInvalidPassword] if oldPassword does not match.
//   - [ErrWeakPassword] if newPassword fails the policy.
func (a *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	account, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if account.Locked {
		return ErrAccountLocked
	}

	if !utils.VerifyPassword(account.PasswordHash, oldPassword) {
		log.Warn().Int64("user_id", userID).Msg("password change with wrong current password")
		return ErrInvalidPassword
	}

	creds := models.Credentials{Username: account.Username, Password: newPassword}
	if err := a.validator.Validate(ctx, creds, validators.FieldPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	hash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}

	a.appendEvent(ctx, a.eventRepository, userID, "Password changed")

	return nil
}

// DeleteAccount removes the account, its file registry, its audit trail and
// its encrypted blobs after re-verifying the password.
//
// Blob removal is best-effort: a blob that cannot be deleted produces a
// warning in the returned report but never aborts the operation. The
// database cascade (file rows, event rows, user row) runs in one
// transaction, so the relational state is all-or-nothing even when disk
// cleanup partially fails.
func (a *authService) DeleteAccount(ctx context.Context, userID int64, password string) (models.AccountRemoval, error) {
	log := logger.FromContext(ctx)

	account, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AccountRemoval{}, ErrUserNotFound
		}
		return models.AccountRemoval{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !utils.VerifyPassword(account.PasswordHash, password) {
		log.Warn().Int64("user_id", userID).Msg("account deletion with wrong password")
		return models.AccountRemoval{}, ErrInvalidPassword
	}

	files, err := a.fileRepository.ListFilesByOwner(ctx, userID)
	if err != nil {
		return models.AccountRemoval{}, fmt.Errorf("file listing failed: %w", err)
	}

	var warnings []string
	for _, file := range files {
		if err := a.blobStorage.Remove(ctx, file.StoragePath); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not remove encrypted file %q: %v", file.DisplayName, err))
		}
	}

	var removal models.AccountRemoval
	err = a.db.WithTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		fileRepo := store.NewFileRepository(tx, a.logger)
		eventRepo := store.NewEventRepository(tx, a.logger)
		userRepo := store.NewUserRepository(tx, a.logger)

		filesRemoved, err := fileRepo.DeleteFilesByOwner(ctx, userID)
		if err != nil {
			return err
		}

		eventsRemoved, err := eventRepo.DeleteEventsByOwner(ctx, userID)
		if err != nil {
			return err
		}

		if _, err := userRepo.DeleteUser(ctx, userID); err != nil {
			return err
		}

		removal = models.AccountRemoval{
			FilesRemoved:  int(filesRemoved),
			EventsRemoved: int(eventsRemoved),
			Warnings:      warnings,
		}
		return nil
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("account deletion transaction failed")
		return models.AccountRemoval{}, fmt.Errorf("account deletion failed: %w", err)
	}

	log.Info().
		Int64("user_id", userID).
		Int("files_removed", removal.FilesRemoved).
		Int("warnings", len(removal.Warnings)).
		Msg("account deleted")

	return removal, nil
}

// GetUserInfo returns the account record for userID.
func (a *authService) GetUserInfo(ctx context.Context, userID int64) (models.User, error) {
	account, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	return account, nil
}

// GetUserEvents returns up to limit audit entries for userID, newest first.
// A non-positive limit returns the full history.
func (a *authService) GetUserEvents(ctx context.Context, userID int64, limit int) ([]models.Event, error) {
	events, err := a.eventRepository.ListEventsByOwner(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("event listing failed: %w", err)
	}
	return events, nil
}

// ResetFailedAttempts clears the lockout counter and flag on the account.
// This is the operator-side recovery path for a locked account.
func (a *authService) ResetFailedAttempts(ctx context.Context) error {
	account, err := a.userRepository.FindSingleUser(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if err := a.userRepository.UpdateLockoutState(ctx, account.UserID, 0, false); err != nil {
		return fmt.Errorf("lockout reset failed: %w", err)
	}

	a.appendEvent(ctx, a.eventRepository, account.UserID, "Failed login attempts reset by operator")

	return nil
}

// GetSecurityStatus reports the persisted lockout state of the account.
func (a *authService) GetSecurityStatus(ctx context.Context) (models.SecurityStatus, error) {
	account, err := a.userRepository.FindSingleUser(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.SecurityStatus{}, ErrUserNotFound
		}
		return models.SecurityStatus{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return models.SecurityStatus{
		Locked:            account.Locked,
		FailedAttempts:    account.FailedAttempts,
		MaxAttempts:       a.maxAttempts,
		RemainingAttempts: a.remaining(account.FailedAttempts),
	}, nil
}

// remaining converts a failed-attempt count into attempts left, never
// negative.
func (a *authService) remaining(failedAttempts int) int {
	if failedAttempts >= a.maxAttempts {
		return 0
	}
	return a.maxAttempts - failedAttempts
}

// appendEvent records an audit entry best-effort: a failed append is logged
// and swallowed so bookkeeping never breaks the operation it describes.
func (a *authService) appendEvent(ctx context.Context, events store.EventRepository, ownerID int64, description string) {
	if err := events.AppendEvent(ctx, models.Event{OwnerID: ownerID, Description: description}); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Int64("owner_id", ownerID).
			Str("description", description).
			Msg("audit event append failed")
	}
}
