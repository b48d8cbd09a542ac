// Package ports defines the core interfaces for the application.
package ports

import "context"

// TranspileOptions carry the per-call knobs of the external transpiler.
// Source maps are always off.
type TranspileOptions struct {
	// Loader is the script kind of the input, "ts" or "tsx".
	Loader string
	// Format is the output module format, always "esm" here.
	Format string
	// Target is the ECMAScript language target.
	Target string
	// Minify enables minification.
	Minify bool
}

// Transpiler defines the interface to the external transpiler.
//
//go:generate mockgen -source=transpiler.go -destination=mocks/mock_transpiler.go -package=mocks
type Transpiler interface {
	// Transpile converts source text into output code. It is fallible;
	// callers decide whether a failure degrades or propagates.
	Transpile(ctx context.Context, src []byte, opts TranspileOptions) ([]byte, error)
}
