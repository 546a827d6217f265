package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/internal/store"
	"github.com/fortifile/fortifile/internal/utils"
	"github.com/fortifile/fortifile/models"
)

// ResetConfirmationPhrase must be supplied verbatim to ResetSystem. The
// phrase is deliberately awkward to type by accident.
const ResetConfirmationPhrase = "RESET FORTIFILE"

// backupFileName is the name the database copy gets inside the backup
// directory.
const backupFileName = "fortifile_backup.db"

// systemService is the concrete implementation of SystemService. It
// operates on the physical installation: the database file, the key file
// and the blob directory.
type systemService struct {
	storages *store.Storages
	cfg      config.Storage
	logger   *logger.Logger
}

// NewSystemService constructs a SystemService over the given storages and
// storage configuration.
func NewSystemService(storages *store.Storages, cfg config.Storage, logger *logger.Logger) SystemService {
	return &systemService{
		storages: storages,
		cfg:      cfg,
		logger:   logger,
	}
}

// GetSystemStatus reports the presence and size of every installation
// component. Initialized is true only when the database file, the key file
// and the blob directory all exist.
func (s *systemService) GetSystemStatus(ctx context.Context) (models.SystemStatus, error) {
	status := models.SystemStatus{
		DatabaseExists: utils.FileExists(s.cfg.DB.Path),
		KeyFileExists:  utils.FileExists(s.cfg.Key.Path),
		BlobDirExists:  utils.DirExists(s.cfg.Files.SecureDir),
		DatabaseSizeMB: utils.FileSizeMB(s.cfg.DB.Path),
	}

	paths, err := s.storages.BlobStorage.ListPaths(ctx)
	if err != nil {
		return models.SystemStatus{}, fmt.Errorf("scanning blob directory failed: %w", err)
	}

	var blobBytes int64
	for _, path := range paths {
		blobBytes += s.storages.BlobStorage.Size(path)
	}
	status.BlobCount = len(paths)
	status.BlobSizeMB = utils.BytesToMB(blobBytes)

	status.Initialized = status.DatabaseExists && status.KeyFileExists && status.BlobDirExists

	return status, nil
}

// VerifySystemIntegrity cross-checks the installation: essential components
// must exist, and every registered file must still have its blob on disk.
// Each problem contributes one human-readable issue string; the report is
// OK only when the list is empty.
func (s *systemService) VerifySystemIntegrity(ctx context.Context) (models.IntegrityReport, error) {
	var issues []string

	if !utils.FileExists(s.cfg.DB.Path) {
		issues = append(issues, fmt.Sprintf("database file missing: %s", s.cfg.DB.Path))
	}
	if !utils.FileExists(s.cfg.Key.Path) {
		issues = append(issues, fmt.Sprintf("encryption key file missing: %s", s.cfg.Key.Path))
	}
	if !utils.DirExists(s.cfg.Files.SecureDir) {
		issues = append(issues, fmt.Sprintf("secure file directory missing: %s", s.cfg.Files.SecureDir))
	}

	files, err := s.storages.FileRepository.ListAllFiles(ctx)
	if err != nil {
		return models.IntegrityReport{}, fmt.Errorf("file registry scan failed: %w", err)
	}

	for _, file := range files {
		if !utils.FileExists(file.StoragePath) {
			issues = append(issues,
				fmt.Sprintf("registered file %q (id %d) has no encrypted blob at %s",
					file.DisplayName, file.FileID, file.StoragePath))
		}
	}

	return models.IntegrityReport{
		OK:     len(issues) == 0,
		Issues: issues,
	}, nil
}

// BackupSystem copies the database file into backupDir as
// fortifile_backup.db. Only the database is copied: backing up the key
// file alongside the data it protects would defeat the point of
// encrypting, and the blobs are useless without their registry anyway.
func (s *systemService) BackupSystem(ctx context.Context, backupDir string) (models.BackupReport, error) {
	log := logger.FromContext(ctx)

	if !utils.FileExists(s.cfg.DB.Path) {
		return models.BackupReport{}, fmt.Errorf("nothing to back up: database file missing at %s", s.cfg.DB.Path)
	}

	dst := filepath.Join(backupDir, backupFileName)
	if err := utils.CopyFile(s.cfg.DB.Path, dst); err != nil {
		log.Err(err).Str("destination", dst).Msg("database backup failed")
		return models.BackupReport{}, fmt.Errorf("database backup failed: %w", err)
	}

	log.Info().Str("destination", dst).Msg("database backed up")

	return models.BackupReport{
		BackupDir: backupDir,
		Items:     []string{backupFileName},
	}, nil
}

// ResetSystem wipes the installation and recreates it empty: database file
// (with its WAL/SHM sidecars), encryption key and blob directory all go,
// then a fresh schema and an empty blob directory are created.
//
// The shared database handle is closed first, so every service constructed
// over the old storages is dead after a reset; the caller is expected to
// rebuild the wiring.
//
// Returns [ErrConfirmationMismatch] unless confirmation equals
// [ResetConfirmationPhrase] exactly.
func (s *systemService) ResetSystem(ctx context.Context, confirmation string) (models.ResetReport, error) {
	log := logger.FromContext(ctx)

	if confirmation != ResetConfirmationPhrase {
		return models.ResetReport{}, ErrConfirmationMismatch
	}

	if err := s.storages.DB.Close(); err != nil {
		log.Warn().Err(err).Msg("closing database before reset failed")
	}

	var removed []string

	targets := []string{
		s.cfg.DB.Path,
		s.cfg.DB.Path + "-wal",
		s.cfg.DB.Path + "-shm",
		s.cfg.Key.Path,
	}
	for _, target := range targets {
		if !utils.FileExists(target) {
			continue
		}
		if err := os.Remove(target); err != nil {
			return models.ResetReport{}, fmt.Errorf("removing %s failed: %w", target, err)
		}
		removed = append(removed, target)
	}

	if utils.DirExists(s.cfg.Files.SecureDir) {
		if err := os.RemoveAll(s.cfg.Files.SecureDir); err != nil {
			return models.ResetReport{}, fmt.Errorf("removing blob directory failed: %w", err)
		}
		removed = append(removed, s.cfg.Files.SecureDir)
	}

	// recreate the empty installation so the next start finds a valid layout
	db, err := store.NewConnectSQLite(ctx, s.cfg.DB, s.logger)
	if err != nil {
		return models.ResetReport{}, fmt.Errorf("recreating database failed: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return models.ResetReport{}, fmt.Errorf("recreating schema failed: %w", err)
	}
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("closing recreated database failed")
	}

	if err := os.MkdirAll(s.cfg.Files.SecureDir, 0o700); err != nil {
		return models.ResetReport{}, fmt.Errorf("recreating blob directory failed: %w", err)
	}

	log.Info().Strs("removed", removed).Msg("system reset completed")

	return models.ResetReport{RemovedItems: removed}, nil
}
