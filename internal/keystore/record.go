// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package keystore implements the encrypted on-disk account store for aname.
//
// One file per account holds an encrypted record; a separate pointer file
// names the default account. All mutations go through temp-file-plus-rename
// so a killed process never leaves a torn record visible.
package keystore

import "strings"

const (
	// recordExt is the extension of per-account record files
	recordExt = ".cred"

	// defaultPointerFile names the file holding the default account name
	defaultPointerFile = "default-account"
)

// Payload is the plaintext inside an encrypted account record.
// Account carries the canonical (pre-sanitization) account name: record
// filenames are lossy, so the name recovered here is authoritative.
type Payload struct {
	Account string `json:"account"`
	Type    string `json:"type"`   // "mnemonic" or "key-uri"
	Secret  string `json:"secret"` // the credential material itself
}

// Credential type tags stored in Payload.Type.
const (
	PayloadTypeMnemonic = "mnemonic"
	PayloadTypeKeyURI   = "key-uri"
)

// sanitizeFileName converts an account name to a filesystem-safe filename
// stem. Every byte outside [A-Za-z0-9._-] becomes '_'. The encoding is
// deliberately lossy; collisions are resolved by trusting the canonical
// name stored inside the encrypted record, never the filename.
func sanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '.' || c == '_' || c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
