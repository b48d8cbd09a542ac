package domain

import "time"

// BuildInfo records what the last build wrote to the output directory.
type BuildInfo struct {
	Version string                `json:"version,omitzero"`
	Modules map[string]ModuleInfo `json:"modules,omitzero"`
}

// ModuleInfo is the recorded state of a single emitted module, used to
// detect drift between the output directory and the last build.
type ModuleInfo struct {
	Digest    string    `json:"digest,omitzero"`
	Size      int64     `json:"size,omitzero"`
	EmittedAt time.Time `json:"emitted_at,omitzero"`
}

// DriftReport lists how the output directory diverged from the build info
// recorded by the last build.
type DriftReport struct {
	// Drifted holds recorded modules whose current digest no longer
	// matches. Catches hand-edited outputs and handler modules whose
	// inputs changed without an id change.
	Drifted []string
	// Missing holds recorded modules absent from the output directory.
	Missing []string
	// Foreign holds output modules no build recorded.
	Foreign []string
}

// Clean reports whether the output directory matches the recorded build.
func (r DriftReport) Clean() bool {
	return len(r.Drifted) == 0 && len(r.Missing) == 0 && len(r.Foreign) == 0
}
