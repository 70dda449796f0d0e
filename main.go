// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Twofa.
//
// Usage:
//
//	go run . [flags]
//	./twofa [flags]
//	./twofa validate [token]
//
// This launches the two-factor entry form. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/twofa/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}
