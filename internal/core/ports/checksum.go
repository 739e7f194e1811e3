package ports

import "go.trai.ch/larder/internal/core/domain"

// ChecksumValidator computes and verifies integrity digests for stored
// byte streams.
//
//go:generate go run go.uber.org/mock/mockgen -source=checksum.go -destination=mocks/mock_checksum.go -package=mocks
type ChecksumValidator interface {
	// Verify checks the file at path against the checksum. None, unset
	// and pending checksums always pass; a resolved digest that
	// disagrees with the recomputed one is a domain.ErrChecksumMismatch.
	Verify(path string, c domain.Checksum) error

	// ResolveAuto computes a digest over the file contents, replacing
	// the pending sentinel. The caller persists the result.
	ResolveAuto(path string) (domain.Checksum, error)
}
