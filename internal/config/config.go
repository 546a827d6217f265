package config

// StructuredConfig is the top-level configuration container for the
// FortiFile application. It aggregates all sub-configurations and is
// populated by merging values from caller overrides, environment variables,
// an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the failed-login
	// threshold and the password hashing cost.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence locations: the
	// SQLite database file, the encryption key file, and the encrypted
	// blob directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from overrides and environment variables.
	// Populated via the FORTIFILE_CONFIG environment variable or the
	// --config CLI flag.
	JSONFilePath string `env:"FORTIFILE_CONFIG"`
}

// App holds application-level configuration values that control the
// authentication security policy.
type App struct {
	// MaxLoginAttempts is the number of consecutive failed authentication
	// attempts after which the account is locked until an operator resets
	// it. The lockout state is persisted on the user row.
	// Env: APP_MAX_LOGIN_ATTEMPTS
	MaxLoginAttempts int `env:"MAX_LOGIN_ATTEMPTS"`

	// BcryptCost is the bcrypt work factor used when hashing passwords.
	// Higher values make registration and login slower but raise the cost
	// of offline guessing against a stolen database.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`
}

// Storage groups the configuration for all storage locations used by the
// application. Every path lives here and is passed to constructors
// explicitly; nothing in the codebase falls back to a process-wide default,
// so isolated instances (e.g. in tests) never collide.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the encrypted blob directory settings.
	Files Files `envPrefix:"FILES_"`

	// Key holds the encryption key file settings.
	Key Key `envPrefix:"KEY_"`
}

// DB holds settings for the local SQLite database file.
type DB struct {
	// Path is the location of the SQLite database file. Created on first
	// run if absent.
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Files holds settings for the encrypted blob directory.
type Files struct {
	// SecureDir is the directory where encrypted blobs are stored, one
	// file per upload, named to embed the owner id and upload timestamp.
	// Env: STORAGE_FILES_SECURE_DIR
	SecureDir string `env:"SECURE_DIR"`
}

// Key holds settings for the persisted symmetric encryption key.
type Key struct {
	// Path is the location of the raw key file. Generated with 0600
	// permissions on first use if absent. There is exactly one key, no
	// rotation: compromising this file compromises every stored blob.
	// Env: STORAGE_KEY_PATH
	Path string `env:"PATH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return GetStructuredConfigWithOverrides(nil)
}

// GetStructuredConfigWithOverrides is like [GetStructuredConfig] but merges
// the caller-supplied overrides with the highest priority. A nil overrides
// pointer is equivalent to no overrides.
func GetStructuredConfigWithOverrides(overrides *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withOverrides(overrides).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
