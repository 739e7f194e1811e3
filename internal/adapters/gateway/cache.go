package gateway

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/larder/internal/adapters/codec"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// CacheGateway intercepts the loaded-value path of a loader node. Cached
// values are serialized through the codec and guarded against type-shape
// drift by comparing the persisted type digests with the current hasher.
type CacheGateway struct {
	inv      ports.Inventory
	hasher   ports.RecipeHasher
	loader   ports.ValueLoader
	codec    *codec.Codec
	packages ports.PackageResolver
	logger   ports.Logger
	filter   ports.EventFilter
	metrics  ports.Metrics

	group singleflight.Group
	now   func() time.Time
}

// NewCache creates a CacheGateway.
func NewCache(
	inv ports.Inventory,
	hasher ports.RecipeHasher,
	loader ports.ValueLoader,
	c *codec.Codec,
	packages ports.PackageResolver,
	logger ports.Logger,
	filter ports.EventFilter,
	metrics ports.Metrics,
) *CacheGateway {
	return &CacheGateway{
		inv:      inv,
		hasher:   hasher,
		loader:   loader,
		codec:    c,
		packages: packages,
		logger:   logger,
		filter:   filter,
		metrics:  metrics,
		now:      time.Now,
	}
}

// LoadValue produces the loaded value for a loader node, data source
// handle and result type, consulting the cache unless caching is
// disabled for this (node, type) pair.
func (g *CacheGateway) LoadValue(ctx context.Context, node *domain.RecipeNode, source any, typ string) (any, error) {
	if !node.CacheEnabled(typ) {
		return g.loader.LoadValue(ctx, node, source, typ)
	}

	nodeHash, err := g.hasher.ComputeHash(node, []string{domain.ParamCache})
	if err != nil {
		return nil, err
	}
	key := valueKey(nodeHash, typ)

	if err := g.inv.Refresh(); err != nil {
		return nil, err
	}
	entry, err := g.inv.Lookup(key)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		value, usable := g.serve(node, entry, key)
		if usable {
			return value, nil
		}
	}

	return g.populate(ctx, node, source, typ, key)
}

// serve attempts to deserialize a cached value. Any failure makes the
// cache unusable for this request and falls through to the loader; only
// a stale payload (drifted types, undecodable envelope) is purged.
func (g *CacheGateway) serve(node *domain.RecipeNode, entry *domain.CacheEntry, key string) (any, bool) {
	data, err := os.ReadFile(entry.FilePath) //nolint:gosec // Path is owned by the inventory
	if err != nil {
		return nil, false
	}
	env, err := g.codec.Decode(data)
	if err != nil {
		g.logger.Warn(fmt.Sprintf("cache: undecodable payload for %s, purging", key))
		g.purge(key)
		return nil, false
	}

	for typ, want := range env.TypeHashes {
		if err := g.packages.ResolvePackageForType(typ); err != nil {
			// Type unavailable: cache unusable, not invalid.
			g.logEvent(node, "cache: type "+typ+" unavailable, falling through")
			return nil, false
		}
		if g.hasher.ComputeTypeHash(typ) != want {
			g.logEvent(node, "cache: type "+typ+" drifted, purging "+key)
			g.purge(key)
			return nil, false
		}
	}

	value, err := g.codec.DecodeValue(env)
	if err != nil {
		g.purge(key)
		return nil, false
	}

	if err := g.inv.RecordAccess(key, g.now()); err != nil {
		return nil, false
	}
	if err := g.inv.RegisterReference(node.DataSet.String(), key); err != nil {
		return nil, false
	}
	g.metrics.CacheHit("cache")
	g.logEvent(node, "cache: hit for "+key)
	return value, true
}

func (g *CacheGateway) populate(ctx context.Context, node *domain.RecipeNode, source any, typ, key string) (any, error) {
	g.metrics.CacheMiss("cache")
	g.logEvent(node, "cache: miss for "+key)

	value, err, _ := g.group.Do(key, func() (any, error) {
		value, err := g.loader.LoadValue(ctx, node, source, typ)
		if err != nil {
			return nil, err
		}

		typeHashes := make(map[string]string, len(node.Types)+1)
		for _, t := range node.Types {
			typeHashes[t] = g.hasher.ComputeTypeHash(t)
		}
		typeHashes[typ] = g.hasher.ComputeTypeHash(typ)

		data, err := g.codec.Encode(value, typeHashes)
		if err != nil {
			return nil, err
		}

		path := g.inv.ObjectPath(key)
		size, err := writeObject(path, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}

		now := g.now()
		entry := domain.CacheEntry{
			RecipeHash:     key,
			FilePath:       path,
			SizeBytes:      size,
			CreatedAt:      now,
			LastAccessedAt: now,
			Checksum:       domain.Checksum{State: domain.ChecksumNone},
			Source: domain.SourceRef{
				DataSetID: node.DataSet.String(),
				Driver:    node.Driver.String(),
			},
		}
		if err := g.inv.RegisterEntry(entry); err != nil {
			return nil, err
		}
		if err := g.inv.RegisterReference(node.DataSet.String(), key); err != nil {
			return nil, err
		}
		return value, nil
	})
	return value, err
}

func (g *CacheGateway) purge(key string) {
	if err := g.inv.RemoveEntry(key); err != nil {
		g.logger.Error(err)
	}
}

func (g *CacheGateway) logEvent(node *domain.RecipeNode, msg string) {
	if g.filter.ShouldLogEvent("cache", node) {
		g.logger.Info(msg)
	}
}

// valueKey derives the cache key for a (loader node, result type) pair.
func valueKey(nodeHash, typ string) string {
	d := xxhash.New()
	_, _ = d.WriteString(nodeHash)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(typ)
	return fmt.Sprintf("%016x", d.Sum64())
}
