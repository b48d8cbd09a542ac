package fs

import (
	"bufio"
	"errors"
	iofs "io/fs"
	"os"
	"time"

	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/core/ports"
)

var _ ports.OutputFS = (*OutputFS)(nil)

// OutputFS performs the builder's operations on the output directory.
type OutputFS struct{}

// NewOutputFS creates a new OutputFS.
func NewOutputFS() *OutputFS {
	return &OutputFS{}
}

// EnsureDir creates dir and any missing parents.
func (o *OutputFS) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
	}
	return nil
}

// Exists reports whether a file is present at path.
func (o *OutputFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ModTime returns the modification time of the file at path.
func (o *OutputFS) ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// FirstLine returns the first line of the file at path. A first line too
// long to be a version marker reports false rather than an error.
func (o *OutputFS) FirstLine(path string) (string, bool) {
	f, err := os.Open(path) //nolint:gosec // Path is derived from the output directory
	if err != nil {
		return "", false
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

// WriteFile writes data to path, replacing any existing file.
func (o *OutputFS) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // Emitted modules are served to browsers
		return zerr.With(zerr.Wrap(err, "failed to write output file"), "path", path)
	}
	return nil
}

// Entries lists the file names directly inside dir, subdirectories
// excluded. A missing directory yields an empty list.
func (o *OutputFS) Entries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read output directory"), "dir", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Remove deletes the file at path.
func (o *OutputFS) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove output file"), "path", path)
	}
	return nil
}
