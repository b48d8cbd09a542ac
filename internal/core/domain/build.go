package domain

import "time"

// BuildOptions configures a single build run.
type BuildOptions struct {
	// SrcDir is the directory scanned for client source files.
	SrcDir string
	// OutDir is the directory generated modules are written to.
	OutDir string
	// Minify passes minification through to the transpiler.
	Minify bool
	// Cleanup prunes output files no build group claims.
	Cleanup bool
	// Verbose raises logging to per-module detail.
	Verbose bool
	// Target is the transpiler's language target.
	Target string
}

// DefaultBuildOptions returns the options a build uses when nothing
// overrides them.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		SrcDir:  "client",
		OutDir:  "dist",
		Minify:  true,
		Cleanup: true,
		Target:  "es2020",
	}
}

// BuildTimings carries the wall-clock durations of a build's phases:
// source scan, the concurrent emit step, cleanup, and the whole run.
type BuildTimings struct {
	Scan    time.Duration
	Build   time.Duration
	Cleanup time.Duration
	Total   time.Duration
}

// BuildResult summarizes what a build produced.
type BuildResult struct {
	// Files lists the base names the build produced or kept, bootstrap
	// included. Cleanup treats this as the set of live outputs.
	Files []string
	// Emitted counts modules written this run.
	Emitted int
	// Skipped counts modules left in place because their content address,
	// version marker, or mtime showed them current.
	Skipped int
	// Pruned counts files removed by cleanup.
	Pruned int
	// Degraded counts modules emitted untranspiled after a transpiler failure.
	Degraded int
	// Timings holds the phase durations.
	Timings BuildTimings
}
