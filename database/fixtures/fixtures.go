// Package fixtures ships the built-in traceability seed data. The
// directory loads this file unless FIXTURE_PATH points somewhere else.
package fixtures

import _ "embed"

//go:embed traceability.json
var raw []byte

// Raw returns the embedded seed data as JSON bytes.
func Raw() []byte { return raw }
