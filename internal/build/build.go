// Package build holds build-time information.
package build

// Version is the application version. It defaults to "dev" and can be
// overwritten by linker flags. It feeds the bootstrap's version marker
// line and the recorded build info.
var Version = "dev"
