package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content digests of emitted modules for drift detection.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// DigestFile computes the xxhash digest and size of the file at path.
func (h *Hasher) DigestFile(path string) (string, int64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), size, nil
}
