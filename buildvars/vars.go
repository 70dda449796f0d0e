// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time with
// `-ldflags -X github.com/toeirei/twofa/buildvars.<Name>=...`. All of them
// are empty for local or development builds.
package buildvars

import "strings"

var (
	Version   string
	Commit    string
	BuildDate string // RFC3339
)

// VersionOrDefault returns `Version` if set, otherwise returns the provided default.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// Describe renders the version line shown by `twofa --version`, e.g.
// "1.2.0 (commit abc1234, built 2026-10-19T10:00:00Z)".
func Describe(def string) string {
	var extra []string
	if Commit != "" {
		extra = append(extra, "commit "+Commit)
	}
	if BuildDate != "" {
		extra = append(extra, "built "+BuildDate)
	}
	v := VersionOrDefault(def)
	if len(extra) == 0 {
		return v
	}
	return v + " (" + strings.Join(extra, ", ") + ")"
}
