package ports

import "go.trai.ch/larder/internal/core/domain"

// RecipeHasher computes content hashes over recipe nodes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type RecipeHasher interface {
	// ComputeHash computes the recursive recipe hash of the node,
	// skipping the named parameters. Pure: unchanged configuration
	// always yields the identical digest.
	ComputeHash(node *domain.RecipeNode, excluded []string) (string, error)

	// ComputeTypeHash computes the digest of a result type descriptor
	// under the same hashing scheme.
	ComputeTypeHash(typ string) string
}
