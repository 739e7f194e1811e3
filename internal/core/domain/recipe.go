// Package domain contains the core domain models for the larder cache store:
// recipe nodes, cache entries and the garbage collection policy.
package domain

// NodeKind discriminates the three recipe node variants.
type NodeKind uint8

const (
	// KindStorage is a storage backend configuration node.
	KindStorage NodeKind = iota + 1
	// KindLoader is a loader configuration node.
	KindLoader
	// KindDataSet is a dataset node aggregating storage nodes and a loader.
	KindDataSet
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindLoader:
		return "loader"
	case KindDataSet:
		return "dataset"
	default:
		return "unknown"
	}
}

// ParamValue is one configuration parameter value: either a literal
// (scalar or structured) or a weak reference to another dataset by id.
type ParamValue struct {
	Literal any
	Ref     InternedString
}

// LiteralParam wraps a literal value as a ParamValue.
func LiteralParam(v any) ParamValue {
	return ParamValue{Literal: v}
}

// RefParam creates a ParamValue referencing the dataset with the given id.
// References never own the dataset they name; they are what turns the
// configuration into a DAG.
func RefParam(datasetID string) ParamValue {
	return ParamValue{Ref: NewInternedString(datasetID)}
}

// IsRef reports whether the value is a dataset reference.
func (p ParamValue) IsRef() bool {
	return !p.Ref.IsZero()
}

// RecipeNode is the polymorphic identity of a storage backend, loader or
// dataset configuration. Two nodes whose discriminating fields and
// dependency hashes match must hash identically.
type RecipeNode struct {
	// ID is the node identity; for datasets it is the dataset id.
	ID   InternedString
	Kind NodeKind
	// Driver identifies the backend/loader implementation.
	Driver InternedString
	// Params maps configuration parameter names to values.
	Params map[string]ParamValue
	// Types holds the result type descriptors of a loader node.
	Types []string
	// Storage and Loader are the children of a dataset node.
	Storage []*RecipeNode
	Loader  *RecipeNode
	// DataSet is the id of the owning dataset for storage and loader
	// nodes, used for reference bookkeeping and logging only.
	DataSet InternedString
}

// Control flag parameter names. These flags gate gateway behavior but are
// excluded from recipe hashing: toggling them never changes node identity.
const (
	ParamSave     = "save"
	ParamCache    = "cache"
	ParamChecksum = "checksum"
)

// SaveEnabled reports whether storing fetched artifacts is enabled for
// this node. Absent means enabled.
func (n *RecipeNode) SaveEnabled() bool {
	return n.flagEnabled(ParamSave)
}

// CacheEnabled reports whether caching loaded values of the given result
// type is enabled for this node. The cache flag may be a bool covering all
// types or a map of type descriptor to bool.
func (n *RecipeNode) CacheEnabled(typ string) bool {
	p, ok := n.Params[ParamCache]
	if !ok {
		return true
	}
	switch v := p.Literal.(type) {
	case bool:
		return v
	case map[string]any:
		enabled, ok := v[typ].(bool)
		if !ok {
			return true
		}
		return enabled
	default:
		return true
	}
}

// ChecksumSpec returns the checksum policy configured on the node.
func (n *RecipeNode) ChecksumSpec() (Checksum, error) {
	p, ok := n.Params[ParamChecksum]
	if !ok {
		return Checksum{State: ChecksumUnset}, nil
	}
	return ParseChecksumSpec(p.Literal)
}

func (n *RecipeNode) flagEnabled(name string) bool {
	p, ok := n.Params[name]
	if !ok {
		return true
	}
	enabled, ok := p.Literal.(bool)
	if !ok {
		return true
	}
	return enabled
}
