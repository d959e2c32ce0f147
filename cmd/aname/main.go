// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// aname manages named blockchain identities for the aName toolchain.
// Credentials (mnemonic phrases or raw key URIs) are stored in a
// password-encrypted local keystore; signing commands resolve them from
// flags, environment variables, or the saved default account.
//
// Usage:
//
//	aname [-d path] account set <name> [--mnemonic|--key-uri|env] [--default]
//	aname [-d path] account list
//	aname [-d path] account use <name>
//	aname [-d path] account remove <name>
//	aname [-d path] account clear [--force]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aname-algo/aname/internal/config"
	"github.com/aname-algo/aname/internal/logx"
	"github.com/aname-algo/aname/internal/version"
)

// cliFlags carries the parsed global flags into the account commands.
type cliFlags struct {
	keystoreDir string
	password    string
	mnemonic    string
	keyURI      string
}

func main() {
	var (
		flags       cliFlags
		configPath  string
		showVersion bool
	)
	flag.StringVar(&flags.keystoreDir, "d", "", "keystore directory (or set ANAME_DATA)")
	flag.StringVar(&flags.password, "password", "", "keystore password (or set ANAME_PASSWORD; prompted if omitted)")
	flag.StringVar(&flags.mnemonic, "mnemonic", "", "mnemonic phrase to store (or set ANAME_MNEMONIC)")
	flag.StringVar(&flags.keyURI, "key-uri", "", "key URI to store (or set ANAME_KEY_URI)")
	flag.StringVar(&configPath, "config", "", "config file (default: $ANAME_CONFIG or the user config dir)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Usage = usage
	flag.Parse()

	// Parsing stops at the first positional argument, so "--version" in a
	// subcommand's arguments stays an ordinary value.
	if showVersion {
		fmt.Printf("aname %s\n", version.String())
		os.Exit(0)
	}

	logx.Init()

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flags.keystoreDir = config.ResolveKeystoreDir(flags.keystoreDir, cfg)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "account":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: 'account' requires a subcommand: set, list, use, remove, clear")
			os.Exit(2)
		}
		if err := runAccount(flags, args[1], args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "aname - named identity and keystore management\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  aname [-d path] account set <name> [--mnemonic phrase | --key-uri uri] [--default]\n")
	fmt.Fprintf(os.Stderr, "  aname [-d path] account list\n")
	fmt.Fprintf(os.Stderr, "  aname [-d path] account use <name>\n")
	fmt.Fprintf(os.Stderr, "  aname [-d path] account remove <name>\n")
	fmt.Fprintf(os.Stderr, "  aname [-d path] account clear [--force]\n")
	fmt.Fprintf(os.Stderr, "  aname --version\n")
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  aname account set main --mnemonic \"word1 word2 ...\" --default\n")
	fmt.Fprintf(os.Stderr, "  ANAME_KEY_URI=ed25519:... aname account set backup\n")
	fmt.Fprintf(os.Stderr, "  aname account use main\n")
	fmt.Fprintf(os.Stderr, "  aname account list\n")
}
