package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns the hash of a file's content.
	ComputeFileHash(path string) (uint64, error)

	// ComputeKey returns a stable hex key for the given parts.
	ComputeKey(parts ...string) string
}
