package models

import "time"

// File is the metadata row for one encrypted blob on disk. The plaintext
// never touches the database: only the display name and the path of the
// ciphertext file are persisted.
type File struct {
	// FileID is the internal unique identifier of the file record.
	FileID int64 `json:"id"`

	// DisplayName is the original, user-supplied filename shown in listings.
	DisplayName string `json:"display_name"`

	// StoragePath is the on-disk location of the encrypted blob. The name
	// embeds the owner id and an upload timestamp so it is unique per upload.
	StoragePath string `json:"-"`

	// UploadedAt is the timestamp when the file was uploaded and encrypted.
	UploadedAt time.Time `json:"uploaded_at"`

	// OwnerID references the owning user. Every file-scoped query filters
	// by both FileID and OwnerID so that unauthorized access is
	// indistinguishable from nonexistence.
	OwnerID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the File model.
func (f File) TableName() string {
	return "files"
}

// FileInfo is the listing view of a [File], annotated with the physical
// size of its encrypted blob. SizeMB is zero when the blob is missing
// from disk; listing never fails because of a dangling row.
type FileInfo struct {
	FileID      int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	UploadedAt  time.Time `json:"uploaded_at"`
	SizeMB      float64   `json:"size_mb"`
}
