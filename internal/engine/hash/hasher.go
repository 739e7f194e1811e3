// Package hash implements the recursive recipe hasher over the
// configuration DAG.
package hash

import (
	"encoding/binary"
	"fmt"
	"slices"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecipeHasher = (*Hasher)(nil)

// Hasher computes recipe hashes. It is a pure function of the current
// configuration state; callers invalidate derived caches when the dataset
// reference graph itself is edited.
type Hasher struct {
	resolver ports.DataSetResolver
}

// NewHasher creates a new Hasher resolving dataset references through the
// given resolver.
func NewHasher(resolver ports.DataSetResolver) *Hasher {
	return &Hasher{resolver: resolver}
}

// ComputeHash computes the recipe hash of the node, skipping parameters
// named in excluded (e.g. the save/cache control flags).
func (h *Hasher) ComputeHash(node *domain.RecipeNode, excluded []string) (string, error) {
	c := &computation{
		resolver: h.resolver,
		excluded: make(map[string]struct{}, len(excluded)),
		memo:     make(map[domain.InternedString]uint64),
		state:    make(map[domain.InternedString]int),
	}
	for _, name := range excluded {
		c.excluded[name] = struct{}{}
	}

	var sum uint64
	var err error
	if node.Kind == domain.KindDataSet && !node.ID.IsZero() {
		sum, err = c.datasetSumNode(node.ID, node)
	} else {
		sum, err = c.nodeSum(node)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}

// ComputeTypeHash computes the digest of a result type descriptor.
func (h *Hasher) ComputeTypeHash(typ string) string {
	d := xxhash.New()
	_, _ = d.WriteString("type")
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(typ)
	return fmt.Sprintf("%016x", d.Sum64())
}

// computation carries the per-call memoization and cycle detection state.
// Memoizing per dataset id bounds work to the DAG's node count rather than
// its path count when diamonds share a node.
type computation struct {
	resolver ports.DataSetResolver
	excluded map[string]struct{}
	memo     map[domain.InternedString]uint64
	state    map[domain.InternedString]int // 0: unvisited, 1: visiting, 2: visited
	path     []domain.InternedString
}

// datasetSum resolves a referenced dataset and hashes it.
func (c *computation) datasetSum(id domain.InternedString) (uint64, error) {
	if sum, ok := c.memo[id]; ok {
		return sum, nil
	}
	if c.state[id] == 1 {
		return 0, c.buildCycleError(id)
	}
	if c.resolver == nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrMissingDependency, "no dataset resolver configured"), "dataset", id.String())
	}
	node, err := c.resolver.ResolveDataSet(id)
	if err != nil {
		return 0, err
	}
	if node == nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrMissingDependency, "dataset not registered"), "dataset", id.String())
	}
	return c.datasetSumNode(id, node)
}

func (c *computation) datasetSumNode(id domain.InternedString, node *domain.RecipeNode) (uint64, error) {
	if sum, ok := c.memo[id]; ok {
		return sum, nil
	}
	c.state[id] = 1
	c.path = append(c.path, id)

	sum, err := c.nodeSum(node)
	if err != nil {
		return 0, err
	}

	c.state[id] = 2
	c.path = c.path[:len(c.path)-1]
	c.memo[id] = sum
	return sum, nil
}

// nodeSum folds the node's discriminating fields and dependency hashes
// into a single digest. Parameter order never matters: names are sorted
// and references contribute the referenced dataset's digest, not the raw
// reference.
func (c *computation) nodeSum(node *domain.RecipeNode) (uint64, error) {
	d := xxhash.New()
	_, _ = d.WriteString(node.Kind.String())
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(node.Driver.String())
	_, _ = d.Write([]byte{0})

	names := make([]string, 0, len(node.Params))
	for name := range node.Params {
		if _, skip := c.excluded[name]; skip {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{'='})

		p := node.Params[name]
		if p.IsRef() {
			sub, err := c.datasetSum(p.Ref)
			if err != nil {
				return 0, err
			}
			_ = binary.Write(d, binary.LittleEndian, sub)
		} else {
			writeLiteral(d, p.Literal)
		}
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.Write([]byte{0})

	types := slices.Clone(node.Types)
	slices.Sort(types)
	for _, typ := range types {
		_, _ = d.WriteString(typ)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.Write([]byte{0})

	if node.Kind == domain.KindDataSet {
		if err := c.foldChildren(d, node); err != nil {
			return 0, err
		}
	}

	return d.Sum64(), nil
}

// foldChildren folds a dataset's storage hashes (sorted, so declaration
// order is irrelevant) and its loader hash.
func (c *computation) foldChildren(d *xxhash.Digest, node *domain.RecipeNode) error {
	sums := make([]uint64, 0, len(node.Storage))
	for _, storage := range node.Storage {
		sum, err := c.nodeSum(storage)
		if err != nil {
			return err
		}
		sums = append(sums, sum)
	}
	slices.Sort(sums)
	for _, sum := range sums {
		_ = binary.Write(d, binary.LittleEndian, sum)
	}
	_, _ = d.Write([]byte{0})

	if node.Loader != nil {
		sum, err := c.nodeSum(node.Loader)
		if err != nil {
			return err
		}
		_ = binary.Write(d, binary.LittleEndian, sum)
	}
	_, _ = d.Write([]byte{0})
	return nil
}

// buildCycleError constructs an error carrying the cycle path.
func (c *computation) buildCycleError(dep domain.InternedString) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range c.path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(c.path); i++ {
		cyclePath += c.path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(domain.ErrCycleDetected, "recipe graph is cyclic"), "cycle", cyclePath)
}

// writeLiteral folds a literal parameter value deterministically. Maps are
// folded in sorted key order; a type tag precedes each value so "1" and 1
// cannot collide.
func writeLiteral(d *xxhash.Digest, v any) {
	switch val := v.(type) {
	case nil:
		_, _ = d.Write([]byte{'z'})
	case string:
		_, _ = d.Write([]byte{'s'})
		_, _ = d.WriteString(val)
	case bool:
		_, _ = d.Write([]byte{'b'})
		if val {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
	case []any:
		_, _ = d.Write([]byte{'l'})
		for _, item := range val {
			writeLiteral(d, item)
			_, _ = d.Write([]byte{0})
		}
	case map[string]any:
		_, _ = d.Write([]byte{'m'})
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = d.WriteString(k)
			_, _ = d.Write([]byte{'='})
			writeLiteral(d, val[k])
			_, _ = d.Write([]byte{0})
		}
	default:
		_, _ = d.Write([]byte{'v'})
		_, _ = fmt.Fprintf(d, "%v", val)
	}
}
