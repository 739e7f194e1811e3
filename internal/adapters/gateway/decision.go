// Package gateway implements the two call-interception points of the
// store: the artifact fetch path and the loaded-value path. Both consult
// the inventory before falling through to the real collaborator and
// persist results afterward.
package gateway

// Decision is a gateway's dispatch outcome for one request, consumed by a
// single dispatcher instead of runtime-composed hook chains.
type Decision uint8

const (
	// DecisionPassThrough forwards the request unmodified, invalidating
	// any existing entry first when the request forces a re-fetch.
	DecisionPassThrough Decision = iota + 1
	// DecisionServeCached serves the validated cached entry.
	DecisionServeCached
	// DecisionServeCachedThenPersist serves the entry after resolving its
	// pending digest and persisting the updated record.
	DecisionServeCachedThenPersist
	// DecisionDelegateThenPersist falls through to the collaborator and
	// persists the result under the new hash.
	DecisionDelegateThenPersist
)

// String returns the string representation of the Decision.
func (d Decision) String() string {
	switch d {
	case DecisionPassThrough:
		return "pass-through"
	case DecisionServeCached:
		return "serve-cached"
	case DecisionServeCachedThenPersist:
		return "serve-cached-then-persist"
	case DecisionDelegateThenPersist:
		return "delegate-then-persist"
	default:
		return "unknown"
	}
}
