package ports

import "go.trai.ch/larder/internal/core/domain"

// DataSetResolver maps dataset ids to their recipe nodes during hashing.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DataSetResolver interface {
	// ResolveDataSet returns the dataset node for the given id.
	// An unknown id is a domain.ErrMissingDependency.
	ResolveDataSet(id domain.InternedString) (*domain.RecipeNode, error)
}
