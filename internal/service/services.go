package service

import (
	"github.com/fortifile/fortifile/internal/config"
	"github.com/fortifile/fortifile/internal/crypto"
	"github.com/fortifile/fortifile/internal/logger"
	"github.com/fortifile/fortifile/internal/store"
)

type Services struct {
	AuthService   AuthService
	FileService   FileService
	SystemService SystemService
}

func NewServices(storages *store.Storages, keychain crypto.KeyChainService, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages, cfg.App, logger),
		FileService:   NewFileService(storages, keychain, logger),
		SystemService: NewSystemService(storages, cfg.Storage, logger),
	}
}
