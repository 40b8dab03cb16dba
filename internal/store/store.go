// Package store provides the durable file primitives every stateful
// component builds on.
//
// Two write disciplines cover all persistent state:
//
//   - Whole-file state (catalog, session marker, email config, summaries)
//     is replaced atomically: the new content is written to a temporary
//     file in the target directory and renamed into place, so a crash
//     mid-write can never leave a half-written file.
//
//   - The sales ledger is append-only: each record is written with
//     O_APPEND and fsync'd before the call returns, so at most the line
//     being written when the process dies can be lost or truncated.
//     Readers treat a partial trailing line as a skippable malformed
//     record.
//
// The store assumes a single writer (one operator, one process). No file
// locking is performed; concurrent external writers would corrupt state.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces the file at path with data using
// write-to-temp-then-rename semantics. The temporary file is created in
// the same directory so the rename stays within one filesystem.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	// CreateTemp uses 0600; state files should be readable like any
	// other file the operator owns.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	return nil
}

// AppendLine appends line plus a trailing newline to the file at path,
// creating it if necessary, and syncs the file to storage before
// returning.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("append %s: sync: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory at path (and any parents) if missing.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("ensure dir %s: %w", path, err)
	}
	return nil
}

// CopyFile copies the file at src to dst, replacing dst atomically.
// Used when moving ledger copies into the outbox.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return WriteFileAtomic(dst, data)
}
