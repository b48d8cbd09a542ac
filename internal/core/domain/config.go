package domain

// Config is the loaded project configuration.
type Config struct {
	// Build holds the build options the configuration file sets.
	Build BuildOptions
	// Transpiler is the name or path of the external transpiler binary.
	Transpiler string
	// CacheFile is where the handler resolution cache is persisted.
	CacheFile string
	// InfoFile is where build info digests are persisted.
	InfoFile string
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Build:      DefaultBuildOptions(),
		Transpiler: "esbuild",
		CacheFile:  ".clientfn/cache.json",
		InfoFile:   ".clientfn/build.json",
	}
}
