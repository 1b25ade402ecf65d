// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration files.

package defaults

import "embed"

//go:embed nestedjson.json
var fs embed.FS

// SystemConfig returns the embedded editor config JSON.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("nestedjson.json")
}
