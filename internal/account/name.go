// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package account defines validated account names for the aname keystore.
//
// An account name is the user-visible identifier for a stored credential.
// Validation happens before any filesystem access: names that could be
// interpreted as paths, traversal sequences, or shell/filesystem
// metacharacters are rejected with a specific error for each rule.
package account

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the maximum account name length in bytes.
const MaxNameLength = 255

// reservedChars are characters rejected in account names. They are either
// filesystem-special on common platforms or prone to confusing shell quoting.
const reservedChars = `<>:"|?*`

// Validation errors, one per rule so callers and error text stay specific.
var (
	// ErrEmptyName indicates an empty account name
	ErrEmptyName = errors.New("account name is empty")

	// ErrNameTooLong indicates the name exceeds MaxNameLength bytes
	ErrNameTooLong = errors.New("account name too long (max 255 bytes)")

	// ErrPathSeparator indicates the name contains '/' or '\'
	ErrPathSeparator = errors.New("account name must not contain path separators")

	// ErrReservedName indicates the name is exactly "." or ".."
	ErrReservedName = errors.New(`"." and ".." are reserved names`)

	// ErrDotAffix indicates the name starts or ends with a dot
	ErrDotAffix = errors.New("account name must not start or end with '.'")

	// ErrReservedChars indicates the name contains filesystem-special characters
	ErrReservedChars = errors.New(`account name contains reserved characters (< > : " | ? *)`)
)

// Name is an account name that passed Validate.
type Name string

// Validate checks an account name against all naming rules.
// Rules are checked in a fixed order and the first failure wins.
// Pure function: no filesystem access, safe to call repeatedly.
func Validate(name string) (Name, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("%q: %w", truncate(name), ErrNameTooLong)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%q: %w", name, ErrPathSeparator)
	}
	if name == "." || name == ".." {
		return "", fmt.Errorf("%q: %w", name, ErrReservedName)
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return "", fmt.Errorf("%q: %w", name, ErrDotAffix)
	}
	if strings.ContainsAny(name, reservedChars) {
		return "", fmt.Errorf("%q: %w", name, ErrReservedChars)
	}
	return Name(name), nil
}

// String returns the name as a plain string.
func (n Name) String() string {
	return string(n)
}

// truncate shortens an overlong name for error text without splitting a
// multi-byte rune.
func truncate(name string) string {
	i := 32
	for i > 0 && !utf8.RuneStart(name[i]) {
		i--
	}
	return name[:i] + "..."
}
