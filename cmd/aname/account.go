// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package main

// Account lifecycle commands: set, list, use, remove, clear

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aname-algo/aname/internal/auth"
	"github.com/aname-algo/aname/internal/config"
	"github.com/aname-algo/aname/internal/identity"
	"github.com/aname-algo/aname/internal/keystore"
)

// runAccount dispatches one account subcommand.
func runAccount(flags cliFlags, sub string, args []string) error {
	if flags.keystoreDir == "" {
		return errors.New("keystore directory not specified (use -d, ANAME_DATA, or keystore_dir in config.yaml)")
	}
	mgr := keystore.NewManager(flags.keystoreDir)

	switch sub {
	case "set":
		name, rest, err := splitName(sub, args)
		if err != nil {
			return err
		}
		makeDefault, err := parseSetArgs(rest, &flags)
		if err != nil {
			return err
		}
		return cmdAccountSet(mgr, flags, name, makeDefault)
	case "list":
		if len(args) > 0 {
			return fmt.Errorf("unexpected argument %q", args[0])
		}
		return cmdAccountList(mgr, flags)
	case "use":
		name, rest, err := splitName(sub, args)
		if err != nil {
			return err
		}
		if len(rest) > 0 {
			return fmt.Errorf("unexpected argument %q", rest[0])
		}
		return cmdAccountUse(mgr, flags, name)
	case "remove":
		name, rest, err := splitName(sub, args)
		if err != nil {
			return err
		}
		if len(rest) > 0 {
			return fmt.Errorf("unexpected argument %q", rest[0])
		}
		return cmdAccountRemove(mgr, flags, name)
	case "clear":
		force := false
		for _, a := range args {
			if a != "--force" {
				return fmt.Errorf("unexpected argument %q", a)
			}
			force = true
		}
		return cmdAccountClear(mgr, force)
	default:
		return fmt.Errorf("unknown account subcommand %q (use set, list, use, remove, clear)", sub)
	}
}

// splitName pulls the positional account name off an argument list.
func splitName(sub string, args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "--") {
		return "", nil, fmt.Errorf("usage: aname account %s <name>", sub)
	}
	return args[0], args[1:], nil
}

// parseSetArgs scans the arguments after the account name. Flag parsing
// stops at the first positional, so set's options are accepted here too
// and override their global counterparts.
func parseSetArgs(args []string, flags *cliFlags) (makeDefault bool, err error) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--default":
			makeDefault = true
		case "--mnemonic", "--key-uri":
			if i+1 >= len(args) {
				return false, fmt.Errorf("%s requires a value", args[i])
			}
			i++
			if args[i-1] == "--mnemonic" {
				flags.mnemonic = args[i]
			} else {
				flags.keyURI = args[i]
			}
		default:
			return false, fmt.Errorf("unexpected argument %q", args[i])
		}
	}
	return makeDefault, nil
}

// cmdAccountSet stores a credential under a name. The credential comes
// from --mnemonic/--key-uri or their environment fallbacks; supplying
// both is rejected before anything touches disk.
func cmdAccountSet(mgr *keystore.Manager, flags cliFlags, name string, makeDefault bool) error {
	cred, err := auth.ResolveDirect(auth.Inputs{
		Mnemonic: flags.mnemonic,
		KeyURI:   flags.keyURI,
		Env:      auth.SnapshotEnviron(),
	})
	if err != nil {
		return err
	}
	if cred.IsZero() {
		return errors.New("no credential supplied (use --mnemonic, --key-uri, or the ANAME_MNEMONIC/ANAME_KEY_URI environment variables)")
	}

	// Reject malformed credential material before it is stored
	address, err := identity.Address(cred)
	if err != nil {
		return err
	}

	// A brand-new keystore gets the confirmed double prompt; later sets
	// must match the existing password anyway, so they are asked once.
	empty, err := keystoreEmpty(mgr)
	if err != nil {
		return err
	}
	password, err := resolvePassword(flags, empty)
	if err != nil {
		return err
	}

	payload, err := auth.ToPayload(cred)
	if err != nil {
		return err
	}
	if err := mgr.Set(name, password, payload, makeDefault); err != nil {
		return err
	}

	fmt.Printf("Stored account %q (address %s)\n", name, address)
	def, err := mgr.DefaultAccount()
	if err == nil && def == name {
		fmt.Printf("Default account is now %q\n", name)
	}
	return nil
}

// cmdAccountList prints the stored account names, default first marked
// with an asterisk. Canonical names come from decrypting each record, so
// the keystore password is required; secrets themselves are never shown.
func cmdAccountList(mgr *keystore.Manager, flags cliFlags) error {
	password, err := resolvePassword(flags, false)
	if err != nil {
		return err
	}

	infos, err := mgr.List(password)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No accounts stored.")
		return nil
	}

	for _, info := range infos {
		marker := " "
		if info.Default {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, info.Name)
	}
	return nil
}

// cmdAccountUse needs the keystore password: the record is decrypted so
// the default pointer can only ever name the account actually stored.
func cmdAccountUse(mgr *keystore.Manager, flags cliFlags, name string) error {
	password, err := resolvePassword(flags, false)
	if err != nil {
		return err
	}
	if err := mgr.Use(name, password); err != nil {
		return err
	}
	fmt.Printf("Default account is now %q\n", name)
	return nil
}

func cmdAccountRemove(mgr *keystore.Manager, flags cliFlags, name string) error {
	password, err := resolvePassword(flags, false)
	if err != nil {
		return err
	}
	if err := mgr.Remove(name, password); err != nil {
		return err
	}
	fmt.Printf("Removed account %q\n", name)
	return nil
}

func cmdAccountClear(mgr *keystore.Manager, force bool) error {
	if !force {
		ok, err := confirm("Delete ALL stored accounts? This cannot be undone. [y/N]: ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	if err := mgr.Clear(); err != nil {
		return err
	}
	fmt.Println("Keystore cleared.")
	return nil
}

// keystoreEmpty reports whether no account records are stored yet.
func keystoreEmpty(mgr *keystore.Manager) (bool, error) {
	files, err := mgr.Store().ListFiles()
	if err != nil {
		return false, err
	}
	return len(files) == 0, nil
}

// resolvePassword picks the keystore password: --password flag first,
// then ANAME_PASSWORD, then an interactive prompt when stdin is a
// terminal. confirmNew additionally asks for the password twice, for
// the set that creates the first record.
func resolvePassword(flags cliFlags, confirmNew bool) (string, error) {
	if flags.password != "" {
		return flags.password, nil
	}
	if pw := os.Getenv(config.EnvPassword); pw != "" {
		return pw, nil
	}
	return promptPassword(confirmNew)
}
