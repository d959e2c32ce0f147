// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package fsutil provides filesystem helpers for the aname keystore.
// Keystore files hold encrypted secret material and use owner-only
// permissions (0600 files, 0700 dirs).
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// KeystoreDirPerm is the permission mode for keystore directories.
const KeystoreDirPerm os.FileMode = 0700

// KeystoreFilePerm is the permission mode for keystore files.
const KeystoreFilePerm os.FileMode = 0600

// MkdirAll creates a directory and all parents with keystore permissions.
// Unlike os.MkdirAll, this explicitly sets permissions after creation to
// bypass umask restrictions.
func MkdirAll(path string) error {
	if err := os.MkdirAll(path, KeystoreDirPerm); err != nil {
		return err
	}
	return os.Chmod(path, KeystoreDirPerm)
}

// WriteFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename. A crash mid-write never leaves a torn
// file visible under the final name: readers observe either the old
// content or the new content.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if err := tmp.Chmod(KeystoreFilePerm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename %s: %w", tmpName, err)
	}
	return nil
}
