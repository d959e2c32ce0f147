// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package version exposes the build metadata stamped into aname binaries.
package version

import "runtime"

// Overridden through -ldflags at release time; the zero values identify
// a local development build.
var (
	Version   = "0.0.0-dev"
	GitCommit = ""
	BuildTime = ""
)

// String renders the stamped metadata on one line.
func String() string {
	s := Version
	if GitCommit != "" {
		s += "+" + GitCommit
	}
	if BuildTime != "" {
		s += " built " + BuildTime
	}
	return s + " " + runtime.GOOS + "/" + runtime.GOARCH
}
