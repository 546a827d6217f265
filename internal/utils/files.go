package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// bytesPerMB converts byte counts to the megabyte figures shown to the
// operator.
const bytesPerMB = 1024 * 1024

// BytesToMB converts a byte count to megabytes rounded to two decimals.
func BytesToMB(size int64) float64 {
	mb := float64(size) / bytesPerMB
	return float64(int64(mb*100+0.5)) / 100
}

// FileSizeMB returns the size of the file at path in megabytes, or zero
// when the file does not exist or cannot be read.
func FileSizeMB(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return BytesToMB(info.Size())
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CopyFile copies src to dst, creating parent directories as needed. The
// destination is written with owner-only permissions and truncated if it
// already exists.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy file contents: %w", err)
	}

	return out.Close()
}
