// export_test.go exports private hooks for white-box testing.
package naming

// SourceHash exposes the rolling hash for direct testing.
var SourceHash = sourceHash

// SetHashFunc replaces the resolver's hash routine so tests can count
// invocations. It returns the previous routine.
func (r *Resolver) SetHashFunc(fn func(string) string) func(string) string {
	prev := r.hash
	r.hash = fn
	return prev
}

// SetStatFunc replaces the resolver's mtime lookup for tests that need a
// controlled clock. It returns the previous routine.
func (r *Resolver) SetStatFunc(fn func(string) (float64, bool)) func(string) (float64, bool) {
	prev := r.stat
	r.stat = fn
	return prev
}
