// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/aname-algo/aname/internal/config"
	"github.com/aname-algo/aname/internal/keystore"
	"github.com/aname-algo/aname/internal/logx"
)

// Resolution errors. Texts are stable substrings matched by downstream
// tooling; none of them may ever carry secret material.
var (
	// ErrConflict indicates mutually exclusive credential sources
	ErrConflict = errors.New("cannot specify both a mnemonic and a key URI")

	// ErrNoAccountSpecified indicates neither --account nor a stored default
	ErrNoAccountSpecified = errors.New("no account specified and no default account set")

	// ErrPasswordRequired indicates a keystore account was selected but no
	// password was supplied by flag or environment
	ErrPasswordRequired = errors.New("keystore password required")

	// ErrNoAuthentication indicates no credential source at all
	ErrNoAuthentication = errors.New("no authentication provided")
)

// Environ is an immutable snapshot of the credential-related environment
// variables. The resolver is a pure function of this snapshot plus explicit
// flags; it never reads the environment mid-algorithm.
type Environ struct {
	KeystoreDir string
	Password    string
	Mnemonic    string
	KeyURI      string
}

// SnapshotEnviron captures the environment once, at the start of resolution.
func SnapshotEnviron() Environ {
	return Environ{
		KeystoreDir: os.Getenv(config.EnvData),
		Password:    os.Getenv(config.EnvPassword),
		Mnemonic:    os.Getenv(config.EnvMnemonic),
		KeyURI:      os.Getenv(config.EnvKeyURI),
	}
}

// Inputs is the full set of explicitly recognized credential sources.
// Flag fields take precedence over the corresponding Env fields; an env
// value is consulted only when its flag is absent.
type Inputs struct {
	Mnemonic    string // --mnemonic
	KeyURI      string // --key-uri
	KeystoreDir string // -d / --keystore
	Password    string // --password
	Account     string // --account
	Env         Environ
}

// firstOf returns the flag value if present, else the env fallback.
func firstOf(flagValue, envValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return envValue
}

// ResolveDirect merges only the direct flag/env sources (mnemonic and key
// URI) into a credential. Used by `account set`, where the keystore is the
// destination rather than a source. Returns a zero Credential when neither
// source is present.
func ResolveDirect(in Inputs) (Credential, error) {
	mnemonic := firstOf(in.Mnemonic, in.Env.Mnemonic)
	keyURI := firstOf(in.KeyURI, in.Env.KeyURI)

	switch {
	case mnemonic != "" && keyURI != "":
		return Credential{}, ErrConflict
	case mnemonic != "":
		return Mnemonic(mnemonic), nil
	case keyURI != "":
		return KeyURI(keyURI), nil
	default:
		return Credential{}, nil
	}
}

// Resolve merges every recognized source into exactly one credential for
// an operation that must authenticate. The rules apply in a fixed order
// and the first match wins:
//
//  1. mnemonic and key URI both present (any flag/env mix) -> ErrConflict
//  2. mnemonic present -> mnemonic credential
//  3. key URI present -> key URI credential
//  4. keystore directory configured -> decrypt the selected account
//     (explicit account, else stored default, else ErrNoAccountSpecified;
//     missing password is ErrPasswordRequired, distinct from a missing
//     account; bad password or tampering propagates as a decryption error)
//  5. nothing at all -> ErrNoAuthentication
//
// Read-only operations simply never call Resolve.
func Resolve(in Inputs) (Credential, error) {
	direct, err := ResolveDirect(in)
	if err != nil {
		return Credential{}, err
	}
	if !direct.IsZero() {
		logx.Debug("resolved credential from direct source", "kind", string(direct.Kind()))
		return direct, nil
	}

	dir := firstOf(in.KeystoreDir, in.Env.KeystoreDir)
	if dir == "" {
		return Credential{}, ErrNoAuthentication
	}

	mgr := keystore.NewManager(dir)

	name := in.Account
	if name == "" {
		def, err := mgr.DefaultAccount()
		if err != nil {
			return Credential{}, err
		}
		name = def
	}
	if name == "" {
		return Credential{}, ErrNoAccountSpecified
	}

	password := firstOf(in.Password, in.Env.Password)
	if password == "" {
		return Credential{}, fmt.Errorf("%w for account %q", ErrPasswordRequired, name)
	}

	payload, err := mgr.Load(name, password)
	if err != nil {
		return Credential{}, err
	}
	cred, err := FromPayload(payload)
	if err != nil {
		return Credential{}, err
	}
	logx.Debug("resolved credential from keystore", "account", name, "kind", string(cred.Kind()))
	return cred, nil
}
