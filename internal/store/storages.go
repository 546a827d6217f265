package store

import (
	"context"

	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/logger"
)

// Storages bundles every persistence component behind one struct so the
// service layer receives a single dependency.
type Storages struct {
	UserRepository  UserRepository
	FileRepository  FileRepository
	EventRepository EventRepository
	BlobStorage     BlobStorage

	// DB is the shared SQLite handle, exposed so services can open
	// transactions with [DB.WithTx] and the system service can manage the
	// lifecycle of the database file.
	DB *DB
}

// NewStorages opens the SQLite database, applies pending migrations and
// wires every repository plus the blob storage.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Debug().Msg("creating storages")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	blobStorage, err := NewBlobStorage(cfg.Files, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, logger),
		FileRepository:  NewFileRepository(db, logger),
		EventRepository: NewEventRepository(db, logger),
		BlobStorage:     blobStorage,
		DB:              db,
	}, nil
}
