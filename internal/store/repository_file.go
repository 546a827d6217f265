package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/models"
)

// fileRepository is the SQLite-backed implementation of [FileRepository].
// It executes all encrypted-file metadata CRUD against the "files" table.
//
// Every read and delete is ownership-scoped: the WHERE clause always pairs
// the file id with the owner id, so an id that belongs to another user
// behaves exactly like an id that does not exist.
type fileRepository struct {
	logger *logger.Logger
	db     DBTX
}

// NewFileRepository constructs a [FileRepository] backed by the provided
// database handle and logger.
func NewFileRepository(db DBTX, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFile persists a new file record and returns the fully populated
// [models.File] with server-assigned fields (FileID, UploadedAt). The
// INSERT uses a RETURNING clause so the caller receives the canonical
// database representation of the row.
func (r *fileRepository) CreateFile(ctx context.Context, file models.File) (models.File, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createFile, file.DisplayName, file.StoragePath, file.OwnerID)

	if err := row.Scan(&file.FileID, &file.DisplayName, &file.StoragePath, &file.UploadedAt, &file.OwnerID); err != nil {
		log.Err(err).
			Str("func", "*fileRepository.CreateFile").
			Int64("owner_id", file.OwnerID).
			Str("display_name", file.DisplayName).
			Msg("error: file insert failed")
		return models.File{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return file, nil
}

// FindFileByIDAndOwner retrieves the file row matching both fileID and
// ownerID.
//
// Error handling:
//   - No matching row (wrong owner or absent id) → [ErrFileNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *fileRepository) FindFileByIDAndOwner(ctx context.Context, fileID, ownerID int64) (models.File, error) {
	log := logger.FromContext(ctx)

	var file models.File
	row := r.db.QueryRowContext(ctx, findFileByIDAndOwner, fileID, ownerID)

	if err := row.Scan(&file.FileID, &file.DisplayName, &file.StoragePath, &file.UploadedAt, &file.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.File{}, ErrFileNotFound
		}
		log.Err(err).
			Str("func", "*fileRepository.FindFileByIDAndOwner").
			Int64("file_id", fileID).
			Int64("owner_id", ownerID).
			Msg("error: scanning error")
		return models.File{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return file, nil
}

// ListFilesByOwner returns every file row owned by ownerID, oldest upload
// first.
func (r *fileRepository) ListFilesByOwner(ctx context.Context, ownerID int64) ([]models.File, error) {
	return r.listFiles(ctx, ownerID)
}

// ListAllFiles returns every file row in the registry regardless of owner.
// The integrity check walks this list to find dangling storage paths.
func (r *fileRepository) ListAllFiles(ctx context.Context) ([]models.File, error) {
	return r.listFiles(ctx, 0)
}

func (r *fileRepository) listFiles(ctx context.Context, ownerID int64) ([]models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFilesQuery(ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "*fileRepository.listFiles").
			Int64("owner_id", ownerID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*fileRepository.listFiles").
			Int64("owner_id", ownerID).
			Msg("failed to execute query for listing files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.File, 0, 16)

	for rows.Next() {
		var file models.File

		scanErr := rows.Scan(&file.FileID, &file.DisplayName, &file.StoragePath, &file.UploadedAt, &file.OwnerID)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*fileRepository.listFiles").
				Int64("owner_id", ownerID).
				Msg("failed to scan file row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

// DeleteFile removes the row matching both fileID and ownerID and reports
// how many rows were affected (zero when no owned file matched).
func (r *fileRepository) DeleteFile(ctx context.Context, fileID, ownerID int64) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteFileByIDAndOwner, fileID, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "*fileRepository.DeleteFile").
			Int64("file_id", fileID).
			Int64("owner_id", ownerID).
			Msg("error: deleting file failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// DeleteFilesByOwner removes every file row owned by ownerID. Used during
// account deletion after the blobs have been removed best-effort.
func (r *fileRepository) DeleteFilesByOwner(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteFilesByOwner, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "*fileRepository.DeleteFilesByOwner").
			Int64("owner_id", ownerID).
			Msg("error: deleting files failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
