// Package fs provides the filesystem adapters: the client source scanner,
// the output directory operations and the output file hasher.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

var _ ports.Scanner = (*Scanner)(nil)

// Scanner enumerates client source files in the source directory.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan lists the source files directly inside dir, sorted by name. Only
// files carrying a recognized extension are reported. A missing directory
// is an empty project, not an error.
func (s *Scanner) Scan(dir string) ([]domain.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read source directory"), "dir", dir)
	}

	var files []domain.SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if !slices.Contains(domain.SourceExtensions, ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", filepath.Join(dir, name))
		}
		files = append(files, domain.SourceFile{
			Path:    filepath.Join(dir, name),
			Base:    strings.TrimSuffix(name, ext),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Read returns the contents of a scanned source file.
func (s *Scanner) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the scan
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read source file"), "path", path)
	}
	return data, nil
}
