// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (username, password_hash)
    VALUES (?, ?)
    RETURNING id, username, password_hash, failed_attempts, locked, created_at;`

	countUsers = `SELECT COUNT(1) FROM users;`

	findUserByUsername = `SELECT id, username, password_hash, failed_attempts, locked, created_at
    FROM users
    WHERE username = ?;`

	findUserByID = `SELECT id, username, password_hash, failed_attempts, locked, created_at
    FROM users
    WHERE id = ?;`

	findSingleUser = `SELECT id, username, password_hash, failed_attempts, locked, created_at
    FROM users
    ORDER BY id
    LIMIT 1;`

	updatePasswordHash = `UPDATE users SET password_hash = ? WHERE id = ?;`

	updateLockoutState = `UPDATE users SET failed_attempts = ?, locked = ? WHERE id = ?;`

	deleteUser = `DELETE FROM users WHERE id = ?;`

	createFile = `INSERT INTO files (display_name, storage_path, owner_id)
    VALUES (?, ?, ?)
    RETURNING id, display_name, storage_path, uploaded_at, owner_id;`

	findFileByIDAndOwner = `SELECT id, display_name, storage_path, uploaded_at, owner_id
    FROM files
    WHERE id = ? AND owner_id = ?;`

	deleteFileByIDAndOwner = `DELETE FROM files WHERE id = ? AND owner_id = ?;`

	deleteFilesByOwner = `DELETE FROM files WHERE owner_id = ?;`

	appendEvent = `INSERT INTO events (description, owner_id)
    VALUES (?, ?);`

	deleteEventsByOwner = `DELETE FROM events WHERE owner_id = ?;`
)

// fileColumns is the canonical column order scanned into [models.File].
var fileColumns = []string{"id", "display_name", "storage_path", "uploaded_at", "owner_id"}

// eventColumns is the canonical column order scanned into [models.Event].
var eventColumns = []string{"id", "description", "occurred_at", "owner_id"}

// buildSelectFilesQuery builds the SELECT over the files table. ownerID of
// zero means "all owners" and is used by the integrity check; a positive
// ownerID restricts the listing to that user.
func buildSelectFilesQuery(ownerID int64) (string, []any, error) {
	builder := sq.Select(fileColumns...).
		From("files").
		OrderBy("uploaded_at ASC", "id ASC")

	if ownerID > 0 {
		builder = builder.Where(sq.Eq{"owner_id": ownerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, ErrBuildingSQLQuery
	}
	return query, args, nil
}

// buildSelectEventsQuery builds the newest-first SELECT over the events
// table for one owner. A non-positive limit returns the full history.
func buildSelectEventsQuery(ownerID int64, limit int) (string, []any, error) {
	builder := sq.Select(eventColumns...).
		From("events").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("occurred_at DESC", "id DESC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, ErrBuildingSQLQuery
	}
	return query, args, nil
}
