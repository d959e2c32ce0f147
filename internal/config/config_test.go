// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad covers missing, valid, and malformed config files
func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Network != "testnet" {
			t.Errorf("Network = %q, expected default %q", cfg.Network, "testnet")
		}
		if cfg.KeystoreDir != "" {
			t.Errorf("KeystoreDir = %q, expected empty", cfg.KeystoreDir)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "keystore_dir: /home/u/.aname/keystore\nnetwork: mainnet\nnode_url: https://node.example\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.KeystoreDir != "/home/u/.aname/keystore" {
			t.Errorf("KeystoreDir = %q", cfg.KeystoreDir)
		}
		if cfg.Network != "mainnet" {
			t.Errorf("Network = %q", cfg.Network)
		}
		if cfg.NodeURL != "https://node.example" {
			t.Errorf("NodeURL = %q", cfg.NodeURL)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("keystore_dir: [broken"), 0600); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestResolveKeystoreDir verifies flag > env > config precedence
func TestResolveKeystoreDir(t *testing.T) {
	cfg := ClientConfig{KeystoreDir: "/from/config"}

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvData, "/from/env")
		if got := ResolveKeystoreDir("/from/flag", cfg); got != "/from/flag" {
			t.Errorf("got %q, expected flag value", got)
		}
	})

	t.Run("env beats config", func(t *testing.T) {
		t.Setenv(EnvData, "/from/env")
		if got := ResolveKeystoreDir("", cfg); got != "/from/env" {
			t.Errorf("got %q, expected env value", got)
		}
	})

	t.Run("config is last", func(t *testing.T) {
		t.Setenv(EnvData, "")
		if got := ResolveKeystoreDir("", cfg); got != "/from/config" {
			t.Errorf("got %q, expected config value", got)
		}
	})

	t.Run("all empty", func(t *testing.T) {
		t.Setenv(EnvData, "")
		if got := ResolveKeystoreDir("", ClientConfig{}); got != "" {
			t.Errorf("got %q, expected empty", got)
		}
	})
}

// TestDefaultPath verifies ANAME_CONFIG overrides the platform default
func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfig, "/custom/config.yaml")
	if got := DefaultPath(); got != "/custom/config.yaml" {
		t.Errorf("DefaultPath = %q, expected override", got)
	}
}
