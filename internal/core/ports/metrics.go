package ports

// Metrics counts cache outcomes. Implementations must be safe for
// concurrent use; a no-op implementation is the default so the core never
// forces a metrics registry on embedders.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CacheHit records a served cache hit for "store" or "cache".
	CacheHit(gateway string)
	// CacheMiss records a fall-through for "store" or "cache".
	CacheMiss(gateway string)
	// Eviction records an evicted entry by reason ("age" or "size").
	Eviction(reason string)
	// ChecksumFailure records an integrity check failure.
	ChecksumFailure()
}
