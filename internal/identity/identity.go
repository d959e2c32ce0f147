// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package identity validates credential material before it is stored and
// derives the (public) account address it controls. Validation failures
// are input errors: nothing invalid ever reaches the keystore.
package identity

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	sdkcrypto "github.com/algorand/go-algorand-sdk/v2/crypto"
	algomnemonic "github.com/algorand/go-algorand-sdk/v2/mnemonic"

	"github.com/aname-algo/aname/internal/auth"
	"github.com/aname-algo/aname/internal/crypto"
)

// KeyURIScheme is the only key URI scheme currently accepted.
const KeyURIScheme = "ed25519:"

// ErrUnsupportedScheme indicates a key URI with an unrecognized scheme.
var ErrUnsupportedScheme = errors.New("unsupported key URI scheme (expected ed25519:)")

// AddressFromMnemonic checks the 25-word mnemonic checksum and returns the
// address it controls. The intermediate private key is zeroed before return.
func AddressFromMnemonic(phrase string) (string, error) {
	pk, err := algomnemonic.ToPrivateKey(strings.TrimSpace(phrase))
	if err != nil {
		return "", fmt.Errorf("invalid mnemonic: %w", err)
	}
	defer crypto.ZeroBytes(pk)

	acct, err := sdkcrypto.AccountFromPrivateKey(pk)
	if err != nil {
		return "", fmt.Errorf("invalid mnemonic: %w", err)
	}
	return acct.Address.String(), nil
}

// AddressFromKeyURI parses an ed25519 key URI and returns the address it
// controls. The payload after the scheme is base64: either a 32-byte seed
// or a full 64-byte private key.
func AddressFromKeyURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, KeyURIScheme) {
		return "", ErrUnsupportedScheme
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, KeyURIScheme))
	if err != nil {
		return "", fmt.Errorf("invalid key URI: %w", err)
	}
	defer crypto.ZeroBytes(raw)

	var pk ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		pk = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		pk = ed25519.PrivateKey(append([]byte{}, raw...))
	default:
		return "", fmt.Errorf("invalid key URI: key material must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
	defer crypto.ZeroBytes(pk)

	acct, err := sdkcrypto.AccountFromPrivateKey(pk)
	if err != nil {
		return "", fmt.Errorf("invalid key URI: %w", err)
	}
	return acct.Address.String(), nil
}

// Address validates a credential and returns the address it controls.
func Address(c auth.Credential) (string, error) {
	switch c.Kind() {
	case auth.KindMnemonic:
		return AddressFromMnemonic(c.Secret())
	case auth.KindKeyURI:
		return AddressFromKeyURI(c.Secret())
	default:
		return "", errors.New("no credential to derive an address from")
	}
}
