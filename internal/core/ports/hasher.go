package ports

// Hasher defines the interface for computing output digests.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// DigestFile computes the digest and size of the file at path.
	DigestFile(path string) (digest string, size int64, err error)
}
