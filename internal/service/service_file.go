package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fortifile/fortifile/internal/crypto"
	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/internal/store"
	"github.com/fortifile/fortifile/internal/utils"
	"github.com/fortifile/fortifile/models"
)

// fileService is the concrete implementation of FileService. It coordinates
// the file registry, the blob storage and the keychain: plaintext exists
// only transiently in memory during upload and download, never on disk
// inside the managed directory.
type fileService struct {
	fileRepository  store.FileRepository
	eventRepository store.EventRepository
	blobStorage     store.BlobStorage
	keychain        crypto.KeyChainService
	logger          *logger.Logger
}

// NewFileService constructs a FileService over the given storages and
// keychain.
func NewFileService(storages *store.Storages, keychain crypto.KeyChainService, logger *logger.Logger) FileService {
	return &fileService{
		fileRepository:  storages.FileRepository,
		eventRepository: storages.EventRepository,
		blobStorage:     storages.BlobStorage,
		keychain:        keychain,
		logger:          logger,
	}
}

// UploadFile reads the plaintext at sourcePath, encrypts it, persists the
// blob and registers the file under userID. displayName defaults to the
// source file's base name when empty.
//
// The operation is atomic from the caller's point of view: if the registry
// insert fails after the blob was written, the blob is removed again.
//
// Returns [ErrSourceNotFound] when sourcePath does not exist or is not a
// regular file.
func (f *fileService) UploadFile(ctx context.Context, userID int64, sourcePath, displayName string) (models.File, error) {
	log := logger.FromContext(ctx)

	if displayName == "" {
		displayName = filepath.Base(sourcePath)
	}

	plaintext, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.File{}, ErrSourceNotFound
		}
		log.Err(err).Str("path", sourcePath).Msg("reading source file failed")
		return models.File{}, fmt.Errorf("reading source file failed: %w", err)
	}

	blob, err := f.keychain.Encrypt(plaintext)
	if err != nil {
		log.Err(err).Str("display_name", displayName).Msg("encryption failed")
		return models.File{}, fmt.Errorf("encryption failed: %w", err)
	}

	storagePath, err := f.blobStorage.Save(ctx, userID, displayName, blob)
	if err != nil {
		return models.File{}, fmt.Errorf("storing encrypted file failed: %w", err)
	}

	file, err := f.fileRepository.CreateFile(ctx, models.File{
		DisplayName: displayName,
		StoragePath: storagePath,
		OwnerID:     userID,
	})
	if err != nil {
		// roll the blob back so no orphan survives a failed registration
		if removeErr := f.blobStorage.Remove(ctx, storagePath); removeErr != nil {
			log.Warn().Err(removeErr).Str("path", storagePath).Msg("orphan blob cleanup failed")
		}
		return models.File{}, fmt.Errorf("registering file failed: %w", err)
	}

	f.appendEvent(ctx, userID, fmt.Sprintf("File uploaded: %s", displayName))

	return file, nil
}

// GetUserFiles lists the files registered to userID. SizeMB reflects the
// encrypted size on disk and reads as zero when the blob is missing; a
// listing never fails because of a dangling registry row.
func (f *fileService) GetUserFiles(ctx context.Context, userID int64) ([]models.FileInfo, error) {
	files, err := f.fileRepository.ListFilesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("file listing failed: %w", err)
	}

	infos := make([]models.FileInfo, 0, len(files))
	for _, file := range files {
		infos = append(infos, models.FileInfo{
			FileID:      file.FileID,
			DisplayName: file.DisplayName,
			UploadedAt:  file.UploadedAt,
			SizeMB:      utils.BytesToMB(f.blobStorage.Size(file.StoragePath)),
		})
	}

	return infos, nil
}

// DownloadFile decrypts the file identified by fileID and writes the
// plaintext to outputPath.
//
// Returns:
//   - [ErrFileNotFound] when fileID does not exist or belongs to another
//     owner (indistinguishable by contract).
//   - [ErrBlobMissing] when the registry row exists but the blob is gone.
//   - [crypto.ErrDecryptionFailed] when the blob cannot be authenticated.
func (f *fileService) DownloadFile(ctx context.Context, userID, fileID int64, outputPath string) error {
	log := logger.FromContext(ctx)

	file, err := f.fileRepository.FindFileByIDAndOwner(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("file lookup failed: %w", err)
	}

	blob, err := f.blobStorage.Load(ctx, file.StoragePath)
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			log.Warn().Int64("file_id", fileID).Str("path", file.StoragePath).Msg("registered blob missing from disk")
			return ErrBlobMissing
		}
		return fmt.Errorf("reading encrypted file failed: %w", err)
	}

	plaintext, err := f.keychain.Decrypt(blob)
	if err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("decryption failed")
		return err
	}

	if err := os.WriteFile(outputPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("writing decrypted file failed: %w", err)
	}

	f.appendEvent(ctx, userID, fmt.Sprintf("File downloaded: %s", file.DisplayName))

	return nil
}

// DeleteFile removes the file identified by fileID: the blob first (a blob
// already gone is fine), then the registry row. A second delete of the same
// id reports [ErrFileNotFound].
func (f *fileService) DeleteFile(ctx context.Context, userID, fileID int64) error {
	file, err := f.fileRepository.FindFileByIDAndOwner(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("file lookup failed: %w", err)
	}

	if err := f.blobStorage.Remove(ctx, file.StoragePath); err != nil {
		return fmt.Errorf("removing encrypted file failed: %w", err)
	}

	affected, err := f.fileRepository.DeleteFile(ctx, fileID, userID)
	if err != nil {
		return fmt.Errorf("deleting file record failed: %w", err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	f.appendEvent(ctx, userID, fmt.Sprintf("File deleted: %s", file.DisplayName))

	return nil
}

// GetStorageInfo reports the physical contents of the blob directory. It
// scans the disk rather than the registry, so orphaned blobs are counted
// too.
func (f *fileService) GetStorageInfo(ctx context.Context) (models.StorageInfo, error) {
	paths, err := f.blobStorage.ListPaths(ctx)
	if err != nil {
		return models.StorageInfo{}, fmt.Errorf("scanning storage failed: %w", err)
	}

	var totalBytes int64
	for _, path := range paths {
		totalBytes += f.blobStorage.Size(path)
	}

	return models.StorageInfo{
		TotalFiles:  len(paths),
		TotalSizeMB: utils.BytesToMB(totalBytes),
		Directory:   f.blobStorage.Dir(),
	}, nil
}

func (f *fileService) appendEvent(ctx context.Context, ownerID int64, description string) {
	if err := f.eventRepository.AppendEvent(ctx, models.Event{OwnerID: ownerID, Description: description}); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Int64("owner_id", ownerID).
			Str("description", description).
			Msg("audit event append failed")
	}
}
