// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package crypto implements password-based authenticated encryption for
// keystore account records.
//
// Each record is self-contained: the Argon2id salt and parameters are
// embedded in the envelope so a record can be decrypted with only the file
// and the password, and so future parameter changes stay decryptable.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters (OWASP recommended)
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2KeyLen  = 32        // AES-256

	saltLen = 32

	kdfArgon2id = "argon2id"

	// envelopeVersion is the current envelope format version
	envelopeVersion = 1
)

// ErrDecryptionFailed is returned for every decryption failure: wrong
// password, truncated or bit-flipped ciphertext, malformed envelope fields.
// Callers must not be able to tell these apart (no password-guessing oracle).
var ErrDecryptionFailed = errors.New("decryption failed")

// Envelope is the serialized form of an encrypted account record.
// KDF parameters travel with the ciphertext; the AES-GCM authentication
// tag is appended to the ciphertext bytes.
type Envelope struct {
	EnvelopeVersion int    `json:"envelope_version"`
	KDF             string `json:"kdf"`
	KDFTime         uint32 `json:"kdf_time"`
	KDFMemory       uint32 `json:"kdf_memory"`
	KDFThreads      uint8  `json:"kdf_threads"`
	Salt            string `json:"salt"`       // Base64-encoded salt
	Nonce           string `json:"nonce"`      // Base64-encoded nonce for AES-GCM
	Ciphertext      string `json:"ciphertext"` // Base64-encoded ciphertext + tag
}

// deriveKey derives an AES-256 key from password and salt using the
// parameters recorded in the envelope.
func deriveKey(password, salt []byte, time, memory uint32, threads uint8) []byte {
	return argon2.IDKey(password, salt, time, memory, threads, argon2KeyLen)
}

// Encrypt encrypts plaintext under a password-derived key.
// A fresh random salt and nonce are generated on every call, so two
// encryptions of the same plaintext never produce the same output.
func Encrypt(plaintext, password []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(password, salt, argon2Time, argon2Memory, argon2Threads)
	defer ZeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	env := Envelope{
		EnvelopeVersion: envelopeVersion,
		KDF:             kdfArgon2id,
		KDFTime:         argon2Time,
		KDFMemory:       argon2Memory,
		KDFThreads:      argon2Threads,
		Salt:            base64.StdEncoding.EncodeToString(salt),
		Nonce:           base64.StdEncoding.EncodeToString(nonce),
		Ciphertext:      base64.StdEncoding.EncodeToString(ciphertext),
	}

	return json.MarshalIndent(env, "", "  ")
}

// Decrypt decrypts an envelope produced by Encrypt.
// Every failure mode surfaces as ErrDecryptionFailed; an unsupported
// envelope version is the one exception, since it signals a format
// mismatch rather than a bad password.
func Decrypt(envelopeJSON, password []byte) ([]byte, error) {
	var env Envelope
	if err := json.Unmarshal(envelopeJSON, &env); err != nil {
		return nil, ErrDecryptionFailed
	}
	if env.EnvelopeVersion != envelopeVersion {
		return nil, fmt.Errorf("envelope_version %d not supported (expected %d)", env.EnvelopeVersion, envelopeVersion)
	}
	if env.KDF != kdfArgon2id {
		return nil, ErrDecryptionFailed
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil || len(salt) == 0 {
		return nil, ErrDecryptionFailed
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	// argon2 panics on a zero time or parallelism; a tampered envelope
	// must fail like any other tampering, not crash.
	if env.KDFTime == 0 || env.KDFThreads == 0 || env.KDFMemory < 8*uint32(env.KDFThreads) {
		return nil, ErrDecryptionFailed
	}

	key := deriveKey(password, salt, env.KDFTime, env.KDFMemory, env.KDFThreads)
	defer ZeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
