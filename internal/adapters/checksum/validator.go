// Package checksum implements integrity digest computation and
// verification for stored payload files.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

// Supported digest algorithm names, as used in "<algorithm>:<hex>" specs.
const (
	AlgoSHA256 = "sha256"
	AlgoXXH64  = "xxh64"
	AlgoBlake3 = "blake3"
)

var _ ports.ChecksumValidator = (*Validator)(nil)

// Validator computes and verifies digests over payload files.
type Validator struct {
	autoAlgo string
}

// NewValidator creates a Validator resolving "auto" checksums with sha256.
func NewValidator() *Validator {
	return &Validator{autoAlgo: AlgoSHA256}
}

// NewValidatorWithAlgo creates a Validator resolving "auto" checksums with
// the given algorithm.
func NewValidatorWithAlgo(algo string) (*Validator, error) {
	if _, err := newDigest(algo); err != nil {
		return nil, err
	}
	return &Validator{autoAlgo: algo}, nil
}

// Verify checks the file at path against the checksum. Unset, none and
// pending states always pass; a resolved digest is recomputed and a
// disagreement is a domain.ErrChecksumMismatch.
func (v *Validator) Verify(path string, c domain.Checksum) error {
	if !c.Enforced() {
		return nil
	}

	algo, want, err := splitDigest(c.Digest)
	if err != nil {
		return err
	}
	got, err := v.fileDigest(algo, path)
	if err != nil {
		return err
	}
	if got != want {
		err := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "file digest differs from recorded digest"), "path", path)
		return zerr.With(err, "expected", c.Digest)
	}
	return nil
}

// ResolveAuto computes a digest over the file contents, producing the
// resolved checksum that replaces the pending sentinel. The caller
// persists it; this happens at most once per entry's life unless the
// policy is explicitly reset.
func (v *Validator) ResolveAuto(path string) (domain.Checksum, error) {
	sum, err := v.fileDigest(v.autoAlgo, path)
	if err != nil {
		return domain.Checksum{}, err
	}
	return domain.ResolvedChecksum(v.autoAlgo + ":" + sum), nil
}

func (v *Validator) fileDigest(algo, path string) (string, error) {
	d, err := newDigest(algo)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path) //nolint:gosec // Path is owned by the inventory
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file for digest"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(d, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to digest file content"), "path", path)
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

func newDigest(algo string) (hash.Hash, error) {
	switch algo {
	case AlgoSHA256:
		return sha256.New(), nil
	case AlgoXXH64:
		return xxhash.New(), nil
	case AlgoBlake3:
		return blake3.New(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownChecksumAlgorithm, "no digest implementation"), "algorithm", algo)
	}
}

func splitDigest(digest string) (algo, hexSum string, err error) {
	algo, hexSum, ok := strings.Cut(digest, ":")
	if !ok || algo == "" || hexSum == "" {
		return "", "", zerr.With(zerr.Wrap(domain.ErrInvalidChecksumSpec, "expected <algorithm>:<hex>"), "digest", digest)
	}
	return algo, hexSum, nil
}
