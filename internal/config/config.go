// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package config resolves the aname client configuration.
//
// Precedence for every setting is explicit flag, then environment
// variable, then the optional YAML config file. The config file never
// supplies passwords or credential material.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aname-algo/aname/internal/logx"
)

// Environment variable names recognized by aname.
const (
	// EnvData is the keystore directory fallback for the -d flag
	EnvData = "ANAME_DATA"

	// EnvPassword is the keystore password fallback for --password
	EnvPassword = "ANAME_PASSWORD"

	// EnvMnemonic is the mnemonic phrase fallback for --mnemonic
	EnvMnemonic = "ANAME_MNEMONIC"

	// EnvKeyURI is the key URI fallback for --key-uri
	EnvKeyURI = "ANAME_KEY_URI"

	// EnvConfig overrides the config file location
	EnvConfig = "ANAME_CONFIG"
)

// ClientConfig holds settings from the optional config.yaml.
type ClientConfig struct {
	KeystoreDir string `yaml:"keystore_dir"` // lowest-precedence keystore location
	Network     string `yaml:"network"`      // default network (mainnet, testnet, betanet)
	NodeURL     string `yaml:"node_url"`     // node endpoint for the registration client
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Network: "testnet",
	}
}

// DefaultPath returns the config file location: $ANAME_CONFIG if set,
// else <user config dir>/aname/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "aname", "config.yaml")
}

// Load reads the config file at path. A missing file yields defaults;
// a malformed file is reported so a typo never silently reverts settings.
func Load(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	logx.Debug("loaded config file", "path", path)
	return cfg, nil
}

// ResolveKeystoreDir picks the keystore directory: flag value first,
// then ANAME_DATA, then the config file. Empty means unconfigured;
// commands that need the keystore report that themselves.
func ResolveKeystoreDir(flagValue string, cfg ClientConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv(EnvData); dir != "" {
		return dir
	}
	return cfg.KeystoreDir
}
