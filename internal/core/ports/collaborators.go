package ports

import (
	"context"

	"go.trai.ch/larder/internal/core/domain"
)

// The interfaces in this file are the external collaborators the gateways
// fall through to. Their errors pass through unmodified; cancellation and
// retries are their responsibility.
//
//go:generate go run go.uber.org/mock/mockgen -source=collaborators.go -destination=mocks/mock_collaborators.go -package=mocks

// ArtifactFetcher is the real storage backend's fetch.
type ArtifactFetcher interface {
	FetchArtifact(ctx context.Context, node *domain.RecipeNode, repr domain.Representation, write bool) (*domain.Artifact, error)
}

// ValueLoader is the real loader's transform from a data source handle to
// an in-memory value of the requested result type.
type ValueLoader interface {
	LoadValue(ctx context.Context, node *domain.RecipeNode, source any, typ string) (any, error)
}

// PackageResolver ensures a result type is available before a cached value
// is deserialized. Failure makes the cached value unusable (the gateway
// falls through to the loader); it is never fatal.
type PackageResolver interface {
	ResolvePackageForType(typ string) error
}

// EventFilter decides whether a cache event for a node is worth logging.
// Purely observational.
type EventFilter interface {
	ShouldLogEvent(category string, node *domain.RecipeNode) bool
}
