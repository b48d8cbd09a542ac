// Package client embeds the browser bootstrap that installs the lazy
// handler dispatch proxy.
package client

import _ "embed"

//go:embed clientfunctions.ts
var source []byte

// Source returns the TypeScript source of the browser bootstrap.
func Source() []byte {
	return source
}

// Marker renders the version line that heads every emitted bootstrap. The
// builder compares it against the first line of an existing output to decide
// whether the bootstrap needs rewriting.
func Marker(version string) string {
	return "// clientFunctions " + version
}
