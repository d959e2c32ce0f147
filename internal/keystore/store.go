// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aname-algo/aname/internal/fsutil"
)

// Common keystore errors
var (
	// ErrAccountNotFound indicates no record exists for the account name.
	// The text is a stable substring matched by downstream tooling.
	ErrAccountNotFound = errors.New("Account not found")
)

// FileStore performs raw encrypted-record I/O for one keystore directory.
// It knows nothing about encryption: callers hand it opaque blobs.
// A missing directory is an empty keystore for reads; Write creates it.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is not
// created until the first Write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the keystore directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// recordPath maps an account name to its record file path.
func (s *FileStore) recordPath(name string) string {
	return filepath.Join(s.dir, sanitizeFileName(name)+recordExt)
}

// pointerPath returns the default pointer file path.
func (s *FileStore) pointerPath() string {
	return filepath.Join(s.dir, defaultPointerFile)
}

// Write persists an encrypted record blob for the account, creating the
// keystore directory if needed. An existing record under the same
// filename is replaced atomically.
func (s *FileStore) Write(name string, blob []byte) error {
	if err := fsutil.MkdirAll(s.dir); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.recordPath(name), blob); err != nil {
		return fmt.Errorf("failed to write account record: %w", err)
	}
	return nil
}

// Read returns the encrypted record blob for the account.
func (s *FileStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.recordPath(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%q: %w", name, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read account record: %w", err)
	}
	return data, nil
}

// readFile reads one record file by filename (as returned by ListFiles).
func (s *FileStore) readFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

// Exists reports whether a record file exists for the account.
func (s *FileStore) Exists(name string) bool {
	_, err := os.Stat(s.recordPath(name))
	return err == nil
}

// Delete removes the account's record file.
func (s *FileStore) Delete(name string) error {
	err := os.Remove(s.recordPath(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%q: %w", name, ErrAccountNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete account record: %w", err)
	}
	return nil
}

// ListFiles returns the record filenames (without directory) currently in
// the keystore. Filenames only; nothing is decrypted. A missing keystore
// directory yields an empty list.
func (s *FileStore) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

// DefaultPointer returns the default account name, or "" if no default
// is set. The stored value is trimmed of surrounding whitespace.
func (s *FileStore) DefaultPointer() (string, error) {
	data, err := os.ReadFile(s.pointerPath())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read default pointer: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetDefaultPointer atomically records name as the default account.
func (s *FileStore) SetDefaultPointer(name string) error {
	if err := fsutil.MkdirAll(s.dir); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.pointerPath(), []byte(name+"\n")); err != nil {
		return fmt.Errorf("failed to write default pointer: %w", err)
	}
	return nil
}

// ClearDefaultPointer removes the default pointer. Clearing an already
// absent pointer is not an error.
func (s *FileStore) ClearDefaultPointer() error {
	err := os.Remove(s.pointerPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear default pointer: %w", err)
	}
	return nil
}

// Wipe deletes every record file and the default pointer. The directory
// itself is left in place. Idempotent: wiping an empty or missing
// keystore succeeds.
func (s *FileStore) Wipe() error {
	files, err := s.ListFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(filepath.Join(s.dir, f)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", f, err)
		}
	}
	return s.ClearDefaultPointer()
}
