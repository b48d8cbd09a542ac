package domain

import "time"

// OutputExt is the extension of every emitted module. Sources may be
// TypeScript; what lands in the output directory is always JavaScript.
const OutputExt = "js"

// BootstrapBase is the base name of the client bootstrap module that
// installs the lazy dispatch proxy in the browser.
const BootstrapBase = "clientFunctions"

// SourceExtensions are the client source file extensions the builder scans for.
var SourceExtensions = []string{".ts", ".tsx"}

// SourceFile is a client source file discovered by the scanner.
type SourceFile struct {
	// Path is the file's location under the source directory.
	Path string
	// Base is the file name without its extension, which becomes the
	// output module's base name.
	Base string
	// ModTime is the file's modification time, compared against the
	// output's to decide whether to rebuild.
	ModTime time.Time
}

// Module is a compiled module ready to be written to the output directory.
type Module struct {
	// ID is the module's identity in the output directory: a handler's
	// content-addressed id, a client file's base name, or the bootstrap
	// base name.
	ID string
	// FileName is the emitted file name, ID plus the output extension.
	FileName string
	// Code is the module source after transpilation.
	Code []byte
	// Degraded is set when transpilation failed and Code carries the
	// synthesized source untranspiled.
	Degraded bool
}
