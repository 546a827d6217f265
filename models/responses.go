package models

// AuthResult is the outcome payload of an authentication attempt. It is
// populated on success and, partially, on failure: Locked and
// RemainingAttempts are meaningful even when the attempt was rejected, so
// the UI can tell the user how many tries are left or that the account has
// just been locked.
type AuthResult struct {
	// UserID is the authenticated user's id. Zero on failure.
	UserID int64 `json:"user_id"`

	// Username echoes the authenticated username. Empty on failure.
	Username string `json:"username"`

	// Locked reports the lockout state after this attempt. On the attempt
	// that reaches the threshold this is already true.
	Locked bool `json:"locked"`

	// RemainingAttempts is how many failed attempts remain before lockout.
	RemainingAttempts int `json:"remaining_attempts"`
}

// SecurityStatus describes the current lockout bookkeeping of the account.
type SecurityStatus struct {
	Locked            bool `json:"locked"`
	FailedAttempts    int  `json:"failed_attempts"`
	MaxAttempts       int  `json:"max_attempts"`
	RemainingAttempts int  `json:"remaining_attempts"`
}

// AccountRemoval reports what account deletion actually removed. Blob
// removal is best-effort: a blob that could not be deleted does not abort
// the operation but is recorded in Warnings, so callers can distinguish
// "fully succeeded" from "succeeded with warnings".
type AccountRemoval struct {
	FilesRemoved  int      `json:"files_removed"`
	EventsRemoved int      `json:"events_removed"`
	Warnings      []string `json:"warnings,omitempty"`
}

// StorageInfo is the physical view of the encrypted blob directory. It is
// computed by scanning the directory directly, independent of the database,
// and is one of the inputs to the integrity check.
type StorageInfo struct {
	TotalFiles  int     `json:"total_files"`
	TotalSizeMB float64 `json:"total_size_mb"`
	Directory   string  `json:"directory"`
}

// SystemStatus aggregates the existence and size of the three essential
// components: the database file, the key file, and the blob directory.
type SystemStatus struct {
	DatabaseExists bool    `json:"database_exists"`
	KeyFileExists  bool    `json:"key_file_exists"`
	BlobDirExists  bool    `json:"blob_dir_exists"`
	DatabaseSizeMB float64 `json:"database_size_mb"`
	BlobCount      int     `json:"blob_count"`
	BlobSizeMB     float64 `json:"blob_size_mb"`

	// Initialized is true iff all three essential components exist.
	Initialized bool `json:"initialized"`
}

// IntegrityReport is the result of a whole-system consistency check. Each
// missing essential component and each file row whose blob is absent from
// disk contributes one issue string. The check reports violations but never
// auto-heals them.
type IntegrityReport struct {
	OK     bool     `json:"ok"`
	Issues []string `json:"issues"`
}

// BackupReport lists what a backup copied. Only the database file is ever
// included: the encryption key and the encrypted blobs are deliberately
// excluded, so a leaked backup can neither decrypt nor leak file contents.
type BackupReport struct {
	BackupDir string   `json:"backup_dir"`
	Items     []string `json:"items"`
}

// ResetReport lists what a full system reset removed before the empty
// schema and blob directory were recreated.
type ResetReport struct {
	RemovedItems []string `json:"removed_items"`
}
