// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Twofa using Cobra.
// It wires configuration, i18n and logging, presents the entry form from
// internal/tui and writes the accepted token to stdout. CLI code stays thin:
// token rules live in internal/twofactor.
package cli
