package logger

import (
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
)

var _ ports.EventFilter = (*CategoryFilter)(nil)

// CategoryFilter is the default event filter: it gates cache event
// logging per category, independent of the node.
type CategoryFilter struct {
	allowed map[string]bool
}

// NewCategoryFilter creates a filter allowing only the given categories.
// With no categories everything is allowed.
func NewCategoryFilter(categories ...string) *CategoryFilter {
	if len(categories) == 0 {
		return &CategoryFilter{}
	}
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}
	return &CategoryFilter{allowed: allowed}
}

// ShouldLogEvent reports whether events of the category are logged.
func (f *CategoryFilter) ShouldLogEvent(category string, _ *domain.RecipeNode) bool {
	if f.allowed == nil {
		return true
	}
	return f.allowed[category]
}
