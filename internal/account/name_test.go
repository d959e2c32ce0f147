// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

package account

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// TestValidate verifies each naming rule rejects with its own error kind
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "alice", wantErr: nil},
		{name: "name with spaces", input: "my main account", wantErr: nil},
		{name: "name with interior dots", input: "alice.mainnet", wantErr: nil},
		{name: "unicode name", input: "контора", wantErr: nil},
		{name: "max length", input: strings.Repeat("a", 255), wantErr: nil},
		{name: "empty", input: "", wantErr: ErrEmptyName},
		{name: "too long", input: strings.Repeat("a", 256), wantErr: ErrNameTooLong},
		{name: "forward slash", input: "a/b", wantErr: ErrPathSeparator},
		{name: "backslash", input: `a\b`, wantErr: ErrPathSeparator},
		{name: "traversal", input: "../../etc/passwd", wantErr: ErrPathSeparator},
		{name: "single dot", input: ".", wantErr: ErrReservedName},
		{name: "double dot", input: "..", wantErr: ErrReservedName},
		{name: "leading dot", input: ".hidden", wantErr: ErrDotAffix},
		{name: "trailing dot", input: "name.", wantErr: ErrDotAffix},
		{name: "less than", input: "a<b", wantErr: ErrReservedChars},
		{name: "greater than", input: "a>b", wantErr: ErrReservedChars},
		{name: "colon", input: "a:b", wantErr: ErrReservedChars},
		{name: "double quote", input: `a"b`, wantErr: ErrReservedChars},
		{name: "pipe", input: "a|b", wantErr: ErrReservedChars},
		{name: "question mark", input: "a?b", wantErr: ErrReservedChars},
		{name: "asterisk", input: "a*b", wantErr: ErrReservedChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate(%q) returned unexpected error: %v", tt.input, err)
				}
				if got.String() != tt.input {
					t.Errorf("Validate(%q) = %q, expected input unchanged", tt.input, got)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate(%q) succeeded, expected %v", tt.input, tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q) = %v, expected %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// TestTruncateKeepsRuneBoundaries verifies the name fragment quoted in
// the length error never splits a multi-byte rune.
func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	// Two-byte runes, so a naive byte cut at 32 lands mid-rune
	name := strings.Repeat("é", 200)
	if _, err := Validate(name); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}

	got := truncate(name)
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") || len(got) > 35 {
		t.Errorf("unexpected truncation result: %q", got)
	}
}

// TestValidateRuleOrder verifies the first failing rule wins when several apply
func TestValidateRuleOrder(t *testing.T) {
	// Contains both a path separator and a reserved character;
	// the path separator rule is checked first.
	_, err := Validate(`a/b*c`)
	if !errors.Is(err, ErrPathSeparator) {
		t.Errorf("expected path separator error to win, got %v", err)
	}

	// Too long and full of reserved characters; length is checked first.
	_, err = Validate(strings.Repeat("*", 300))
	if !errors.Is(err, ErrNameTooLong) {
		t.Errorf("expected length error to win, got %v", err)
	}
}
