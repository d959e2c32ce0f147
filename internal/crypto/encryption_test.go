// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
)

// TestEncryptDecryptRoundTrip verifies a payload survives encryption
func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`{"account":"alice","type":"mnemonic","secret":"word word word"}`)
	password := []byte("correct horse battery staple")

	blob, err := Encrypt(plaintext, password)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	got, err := Decrypt(blob, password)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip mismatch: got %q, expected %q", got, plaintext)
	}
}

// TestEncryptNonDeterministic verifies fresh salt and nonce on every call
func TestEncryptNonDeterministic(t *testing.T) {
	plaintext := []byte("same payload")
	password := []byte("same password")

	blob1, err := Encrypt(plaintext, password)
	if err != nil {
		t.Fatalf("first Encrypt failed: %v", err)
	}
	blob2, err := Encrypt(plaintext, password)
	if err != nil {
		t.Fatalf("second Encrypt failed: %v", err)
	}

	if bytes.Equal(blob1, blob2) {
		t.Error("two encryptions of the same plaintext produced identical output")
	}

	var env1, env2 Envelope
	if err := json.Unmarshal(blob1, &env1); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	if err := json.Unmarshal(blob2, &env2); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	if env1.Salt == env2.Salt {
		t.Error("salt was reused across encryptions")
	}
	if env1.Nonce == env2.Nonce {
		t.Error("nonce was reused across encryptions")
	}
}

// TestDecryptFailsClosed verifies wrong password and tampering are
// indistinguishable: both must surface the same ErrDecryptionFailed.
func TestDecryptFailsClosed(t *testing.T) {
	plaintext := []byte("secret material")
	password := []byte("password")

	blob, err := Encrypt(plaintext, password)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := Decrypt(blob, []byte("wrong password"))
		if !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("bit-flipped ciphertext", func(t *testing.T) {
		var env Envelope
		if err := json.Unmarshal(blob, &env); err != nil {
			t.Fatalf("failed to parse envelope: %v", err)
		}
		ct, err := base64.StdEncoding.DecodeString(env.Ciphertext)
		if err != nil {
			t.Fatalf("failed to decode ciphertext: %v", err)
		}
		ct[0] ^= 0x01
		env.Ciphertext = base64.StdEncoding.EncodeToString(ct)
		tampered, err := json.Marshal(env)
		if err != nil {
			t.Fatalf("failed to re-marshal envelope: %v", err)
		}

		_, err = Decrypt(tampered, password)
		if !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := Decrypt([]byte("not an envelope"), password)
		if !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("error text carries no detail", func(t *testing.T) {
		_, wrongErr := Decrypt(blob, []byte("nope"))
		blob2 := append([]byte{}, blob...)
		blob2[len(blob2)-10] ^= 0x01
		_, tamperErr := Decrypt(blob2, password)
		if wrongErr == nil || tamperErr == nil {
			t.Fatal("expected both decryptions to fail")
		}
		if wrongErr.Error() != tamperErr.Error() {
			t.Errorf("wrong-password and tampered errors differ: %q vs %q", wrongErr, tamperErr)
		}
	})

	t.Run("hostile KDF params do not panic", func(t *testing.T) {
		var env Envelope
		if err := json.Unmarshal(blob, &env); err != nil {
			t.Fatalf("failed to parse envelope: %v", err)
		}
		env.KDFThreads = 0
		hostile, err := json.Marshal(env)
		if err != nil {
			t.Fatalf("failed to re-marshal envelope: %v", err)
		}
		if _, err := Decrypt(hostile, password); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})
}

// TestDecryptUnsupportedVersion verifies future envelope versions are rejected
// with a version error rather than a generic decryption failure.
func TestDecryptUnsupportedVersion(t *testing.T) {
	blob := []byte(`{"envelope_version":99,"kdf":"argon2id","salt":"","nonce":"","ciphertext":""}`)
	_, err := Decrypt(blob, []byte("pw"))
	if err == nil {
		t.Fatal("expected error for unsupported version")
	}
	if errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("version mismatch should not masquerade as decryption failure: %v", err)
	}
}

// TestDecryptUsesPersistedKDFParams verifies the envelope's own KDF
// parameters are honored, not the current compile-time defaults.
func TestDecryptUsesPersistedKDFParams(t *testing.T) {
	password := []byte("pw")
	blob, err := Encrypt([]byte("payload"), password)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		t.Fatalf("failed to parse envelope: %v", err)
	}
	// Changing the persisted time cost changes the derived key,
	// so decryption must fail if the field is actually used.
	env.KDFTime = env.KDFTime + 1
	altered, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("failed to re-marshal envelope: %v", err)
	}
	if _, err := Decrypt(altered, password); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed after KDF param change, got %v", err)
	}
}
