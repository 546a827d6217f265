package service

import (
	"context"

	"github.com/fortifile/fortifile/models"
)

type AuthService interface {
	UserExists(ctx context.Context) (bool, error)
	RegisterUser(ctx context.Context, username, password string) (models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (models.AuthResult, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID int64, password string) (models.AccountRemoval, error)

	GetUserInfo(ctx context.Context, userID int64) (models.User, error)
	GetUserEvents(ctx context.Context, userID int64, limit int) ([]models.Event, error)

	ResetFailedAttempts(ctx context.Context) error
	GetSecurityStatus(ctx context.Context) (models.SecurityStatus, error)
}

type FileService interface {
	UploadFile(ctx context.Context, userID int64, sourcePath, displayName string) (models.File, error)
	GetUserFiles(ctx context.Context, userID int64) ([]models.FileInfo, error)
	DownloadFile(ctx context.Context, userID, fileID int64, outputPath string) error
	DeleteFile(ctx context.Context, userID, fileID int64) error
	GetStorageInfo(ctx context.Context) (models.StorageInfo, error)
}

type SystemService interface {
	GetSystemStatus(ctx context.Context) (models.SystemStatus, error)
	VerifySystemIntegrity(ctx context.Context) (models.IntegrityReport, error)
	BackupSystem(ctx context.Context, backupDir string) (models.BackupReport, error)
	ResetSystem(ctx context.Context, confirmation string) (models.ResetReport, error)
}
