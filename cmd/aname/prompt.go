// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdinReader is a shared reader for non-terminal stdin
var stdinReader *bufio.Reader

// readLine reads one trimmed line from stdin without echo suppression.
func readLine() (string, error) {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a secret from stdin. On a terminal the input is not
// echoed; otherwise a plain line is read (piped input, tests).
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
	return readLine()
}

// promptPassword asks for the keystore password interactively. With
// confirmNew the password is asked twice and must match.
func promptPassword(confirmNew bool) (string, error) {
	password, err := readSecret("Keystore password: ")
	if err != nil {
		return "", fmt.Errorf("keystore password required (use --password or ANAME_PASSWORD): %w", err)
	}
	if password == "" {
		return "", errors.New("keystore password required (use --password or ANAME_PASSWORD)")
	}
	if confirmNew {
		again, err := readSecret("Confirm password: ")
		if err != nil {
			return "", err
		}
		if password != again {
			return "", errors.New("passwords do not match")
		}
	}
	return password, nil
}

// confirm asks a yes/no question and reports whether the user agreed.
func confirm(prompt string) (bool, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := readLine()
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes", nil
}
