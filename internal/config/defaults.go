package config

import "golang.org/x/crypto/bcrypt"

// Default file locations. All of them are relative to the working directory
// of the desktop application; tests and embedders override them through
// [GetStructuredConfigWithOverrides].
const (
	DefaultDatabasePath  = "fortifile.db"
	DefaultKeyPath       = "fortifile.key"
	DefaultSecureFileDir = "secure_files"

	// DefaultMaxLoginAttempts is the failed-login threshold after which
	// the account is locked until an explicit operator reset.
	DefaultMaxLoginAttempts = 3
)

// defaultConfig returns the built-in configuration, merged with the lowest
// priority so that any other source wins.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			MaxLoginAttempts: DefaultMaxLoginAttempts,
			BcryptCost:       bcrypt.DefaultCost,
		},
		Storage: Storage{
			DB:    DB{Path: DefaultDatabasePath},
			Files: Files{SecureDir: DefaultSecureFileDir},
			Key:   Key{Path: DefaultKeyPath},
		},
	}
}
