package hash

import (
	"sync"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DataSetResolver = (*Registry)(nil)

// Registry is an in-memory dataset resolver. Embedding applications
// register their dataset nodes here; the hasher resolves references
// through it.
type Registry struct {
	mu    sync.RWMutex
	nodes map[domain.InternedString]*domain.RecipeNode
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[domain.InternedString]*domain.RecipeNode),
	}
}

// Register adds or replaces a dataset node under its id.
func (r *Registry) Register(node *domain.RecipeNode) error {
	if node.ID.IsZero() {
		return zerr.New("dataset node has no id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[node.ID] = node
	return nil
}

// Unregister removes a dataset node.
func (r *Registry) Unregister(id domain.InternedString) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.nodes, id)
}

// ResolveDataSet returns the dataset node for the given id.
func (r *Registry) ResolveDataSet(id domain.InternedString) (*domain.RecipeNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, ok := r.nodes[id]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingDependency, "dataset not registered"), "dataset", id.String())
	}
	return node, nil
}
