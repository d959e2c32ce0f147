// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package auth turns caller-supplied configuration — flags, an environment
// snapshot, and the keystore — into exactly one usable credential, or a
// precise rejection. Nothing here caches secrets: a resolved Credential
// must not outlive the operation that needed it.
package auth

import (
	"fmt"

	"github.com/aname-algo/aname/internal/keystore"
)

// Kind tags the credential variant.
type Kind string

// Credential variants. Exactly one is ever populated for a resolved
// credential; supplying both is an input error, not a data-model state.
const (
	KindMnemonic Kind = "mnemonic"
	KindKeyURI   Kind = "key-uri"
)

// Credential is the secret material for one identity: a mnemonic phrase
// or a raw key URI. The zero value is "no credential".
type Credential struct {
	kind   Kind
	secret string
}

// Mnemonic wraps a mnemonic phrase as a credential.
func Mnemonic(phrase string) Credential {
	return Credential{kind: KindMnemonic, secret: phrase}
}

// KeyURI wraps a raw key URI as a credential.
func KeyURI(uri string) Credential {
	return Credential{kind: KindKeyURI, secret: uri}
}

// Kind returns the variant tag.
func (c Credential) Kind() Kind {
	return c.kind
}

// Secret returns the credential material. Never log or display this.
func (c Credential) Secret() string {
	return c.secret
}

// IsZero reports whether no credential is present.
func (c Credential) IsZero() bool {
	return c.kind == ""
}

// String returns a redacted description safe for logs and errors.
func (c Credential) String() string {
	if c.IsZero() {
		return "credential(none)"
	}
	return fmt.Sprintf("credential(%s)", c.kind)
}

// FromPayload converts a decrypted keystore payload into a Credential.
func FromPayload(p keystore.Payload) (Credential, error) {
	switch p.Type {
	case keystore.PayloadTypeMnemonic:
		return Mnemonic(p.Secret), nil
	case keystore.PayloadTypeKeyURI:
		return KeyURI(p.Secret), nil
	default:
		return Credential{}, fmt.Errorf("unknown credential type %q in account record", p.Type)
	}
}

// ToPayload converts a Credential into a keystore payload for storage.
// The canonical account name is filled in by the keystore manager.
func ToPayload(c Credential) (keystore.Payload, error) {
	switch c.kind {
	case KindMnemonic:
		return keystore.Payload{Type: keystore.PayloadTypeMnemonic, Secret: c.secret}, nil
	case KindKeyURI:
		return keystore.Payload{Type: keystore.PayloadTypeKeyURI, Secret: c.secret}, nil
	default:
		return keystore.Payload{}, fmt.Errorf("cannot store empty credential")
	}
}
