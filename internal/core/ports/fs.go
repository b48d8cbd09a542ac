package ports

import (
	"time"

	"clientfn.dev/clientfn/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks

// Scanner defines the interface for enumerating and reading client source
// files.
type Scanner interface {
	// Scan lists the source files in dir carrying a recognized extension.
	// A missing directory yields an empty list, not an error.
	Scan(dir string) ([]domain.SourceFile, error)

	// Read returns the contents of a scanned source file.
	Read(path string) ([]byte, error)
}

// OutputFS defines the filesystem operations the builder performs on the
// output directory.
type OutputFS interface {
	// EnsureDir creates the directory if needed. Creation failures are
	// reported but callers may swallow them; an unusable directory
	// surfaces as write errors.
	EnsureDir(dir string) error

	// Exists reports whether a file is present.
	Exists(path string) bool

	// ModTime returns a file's modification time. ok is false when the
	// file cannot be statted.
	ModTime(path string) (mtime time.Time, ok bool)

	// FirstLine returns the first line of a file. ok is false when the
	// file cannot be read.
	FirstLine(path string) (line string, ok bool)

	// WriteFile writes data to path, replacing any existing file.
	WriteFile(path string, data []byte) error

	// Entries lists the file names directly inside dir.
	Entries(dir string) ([]string, error)

	// Remove deletes a file.
	Remove(path string) error
}
