// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package keystore

import (
	"encoding/json"
	"fmt"

	"github.com/aname-algo/aname/internal/account"
	"github.com/aname-algo/aname/internal/crypto"
	"github.com/aname-algo/aname/internal/logx"
)

// Info describes one stored account without exposing its secret payload.
type Info struct {
	Name    string
	Default bool
}

// Manager orchestrates the account lifecycle: name validation, payload
// encryption, record I/O, and default pointer upkeep.
type Manager struct {
	store *FileStore
}

// NewManager returns a manager over the keystore directory at dir.
func NewManager(dir string) *Manager {
	return &Manager{store: NewFileStore(dir)}
}

// Store exposes the underlying file store.
func (m *Manager) Store() *FileStore {
	return m.store
}

// Set validates the name, encrypts the payload under the password, and
// persists the record. The first account ever stored becomes the default;
// makeDefault forces it for later accounts. The pointer is only updated
// after the record file is confirmed written, so a failed write never
// leaves the pointer referencing a missing account.
func (m *Manager) Set(name, password string, p Payload, makeDefault bool) error {
	validated, err := account.Validate(name)
	if err != nil {
		return err
	}

	// Canonical name travels inside the ciphertext; filenames are lossy.
	p.Account = validated.String()

	plaintext, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize account record: %w", err)
	}
	defer crypto.ZeroBytes(plaintext)

	blob, err := crypto.Encrypt(plaintext, []byte(password))
	if err != nil {
		return fmt.Errorf("failed to encrypt account record: %w", err)
	}

	existing, err := m.store.ListFiles()
	if err != nil {
		return err
	}
	first := len(existing) == 0

	if err := m.store.Write(validated.String(), blob); err != nil {
		return err
	}
	logx.Debug("stored account record", "account", validated.String())

	if first || makeDefault {
		if err := m.store.SetDefaultPointer(validated.String()); err != nil {
			return err
		}
		logx.Debug("updated default account", "account", validated.String())
	}
	return nil
}

// List decrypts every record to recover canonical account names.
// Filenames are sanitized and possibly colliding, so the name inside
// each record is authoritative. The result carries names only, never
// secret material.
func (m *Manager) List(password string) ([]Info, error) {
	files, err := m.store.ListFiles()
	if err != nil {
		return nil, err
	}
	def, err := m.store.DefaultPointer()
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(files))
	for _, f := range files {
		blob, err := m.store.readFile(f)
		if err != nil {
			return nil, err
		}
		p, err := decryptPayload(blob, password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		infos = append(infos, Info{Name: p.Account, Default: p.Account == def})
	}
	return infos, nil
}

// Use sets the default pointer to an existing account. The record is
// decrypted first so the pointer can only ever name an account whose
// canonical name matches; a different name that happens to sanitize to
// the same filename is treated as not found.
func (m *Manager) Use(name, password string) error {
	p, err := m.Load(name, password)
	if err != nil {
		return err
	}
	return m.store.SetDefaultPointer(p.Account)
}

// Remove deletes an account's record. The record is decrypted first to
// confirm the canonical name, so a colliding filename never deletes a
// different account. If the removed account was the default, the pointer
// is cleared so later resolutions fail loudly instead of silently
// picking another identity.
func (m *Manager) Remove(name, password string) error {
	validated, err := account.Validate(name)
	if err != nil {
		return err
	}
	if _, err := m.Load(name, password); err != nil {
		return err
	}
	if err := m.store.Delete(validated.String()); err != nil {
		return err
	}
	def, err := m.store.DefaultPointer()
	if err != nil {
		return err
	}
	if def == validated.String() {
		return m.store.ClearDefaultPointer()
	}
	return nil
}

// Clear wipes every account and the default pointer. Idempotent.
func (m *Manager) Clear() error {
	return m.store.Wipe()
}

// DefaultAccount returns the current default account name, or "" if none.
func (m *Manager) DefaultAccount() (string, error) {
	return m.store.DefaultPointer()
}

// Load reads and decrypts one account's record. Used by credential
// resolution; the returned payload must not outlive the operation that
// needed it.
func (m *Manager) Load(name, password string) (Payload, error) {
	validated, err := account.Validate(name)
	if err != nil {
		return Payload{}, err
	}
	blob, err := m.store.Read(validated.String())
	if err != nil {
		return Payload{}, err
	}
	p, err := decryptPayload(blob, password)
	if err != nil {
		return Payload{}, err
	}
	// Sanitization is lossy, so two valid names can share a filename.
	// Only the name inside the ciphertext is authoritative.
	if p.Account != validated.String() {
		return Payload{}, fmt.Errorf("%q: %w", validated.String(), ErrAccountNotFound)
	}
	return p, nil
}

// decryptPayload decrypts a record blob and parses the inner payload.
// The decrypted bytes are zeroed before returning.
func decryptPayload(blob []byte, password string) (Payload, error) {
	plaintext, err := crypto.Decrypt(blob, []byte(password))
	if err != nil {
		return Payload{}, err
	}
	defer crypto.ZeroBytes(plaintext)

	var p Payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return Payload{}, crypto.ErrDecryptionFailed
	}
	return p, nil
}
