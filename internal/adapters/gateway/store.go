package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// StoreGateway intercepts the artifact fetch path of a storage backend
// node. Collaborator errors pass through unmodified; only integrity and
// structural errors originate here.
type StoreGateway struct {
	inv       ports.Inventory
	hasher    ports.RecipeHasher
	validator ports.ChecksumValidator
	fetcher   ports.ArtifactFetcher
	logger    ports.Logger
	filter    ports.EventFilter
	metrics   ports.Metrics

	// group de-duplicates concurrent in-process populates per hash.
	// Cross-process races are last-writer-wins on the index.
	group singleflight.Group
	now   func() time.Time
}

// NewStore creates a StoreGateway.
func NewStore(
	inv ports.Inventory,
	hasher ports.RecipeHasher,
	validator ports.ChecksumValidator,
	fetcher ports.ArtifactFetcher,
	logger ports.Logger,
	filter ports.EventFilter,
	metrics ports.Metrics,
) *StoreGateway {
	return &StoreGateway{
		inv:       inv,
		hasher:    hasher,
		validator: validator,
		fetcher:   fetcher,
		logger:    logger,
		filter:    filter,
		metrics:   metrics,
		now:       time.Now,
	}
}

// FetchArtifact materializes a storage node's artifact in the requested
// representation. A miss is silently transparent: the result is identical
// to having no cache.
func (g *StoreGateway) FetchArtifact(ctx context.Context, node *domain.RecipeNode, repr domain.Representation, write bool) (*domain.Artifact, error) {
	hash, err := g.hasher.ComputeHash(node, []string{domain.ParamSave})
	if err != nil {
		return nil, err
	}

	if write || !node.SaveEnabled() {
		// Forced or disabled: drop whatever is cached, then forward the
		// request untouched.
		if err := g.inv.RemoveEntry(hash); err != nil {
			g.logger.Warn(fmt.Sprintf("store: failed to invalidate %s: %v", hash, err))
		}
		g.logEvent(node, "store: pass-through for "+hash)
		return g.fetcher.FetchArtifact(ctx, node, repr, write)
	}

	decision, entry, err := g.decide(node, hash)
	if err != nil {
		return nil, err
	}

	switch decision {
	case DecisionServeCached:
		return g.serve(node, entry, repr)
	case DecisionServeCachedThenPersist:
		if err := g.resolvePending(entry); err != nil {
			return nil, err
		}
		return g.serve(node, entry, repr)
	case DecisionDelegateThenPersist:
		return g.populate(ctx, node, hash, repr)
	default:
		return g.fetcher.FetchArtifact(ctx, node, repr, write)
	}
}

// resolvePending computes the entry's deferred digest and persists it.
// This happens at most once per entry unless the checksum is reset.
func (g *StoreGateway) resolvePending(entry *domain.CacheEntry) error {
	resolved, err := g.validator.ResolveAuto(entry.FilePath)
	if err != nil {
		return err
	}
	entry.Checksum = resolved
	return g.inv.RegisterEntry(*entry)
}

// decide consults the inventory and validates the entry's integrity.
// A checksum mismatch purges the entry and counts as a miss: corrupted
// data is never silently served.
func (g *StoreGateway) decide(node *domain.RecipeNode, hash string) (Decision, *domain.CacheEntry, error) {
	if err := g.inv.Refresh(); err != nil {
		return 0, nil, err
	}
	entry, err := g.inv.Lookup(hash)
	if err != nil {
		return 0, nil, err
	}
	if entry == nil {
		return DecisionDelegateThenPersist, nil, nil
	}

	switch entry.Checksum.State {
	case domain.ChecksumPending:
		// Auto checksum: resolved on first access.
		return DecisionServeCachedThenPersist, entry, nil
	case domain.ChecksumResolved:
		if err := g.validator.Verify(entry.FilePath, entry.Checksum); err != nil {
			if !errors.Is(err, domain.ErrChecksumMismatch) {
				return 0, nil, err
			}
			g.metrics.ChecksumFailure()
			g.logger.Warn(fmt.Sprintf("store: checksum mismatch for %s, purging", hash))
			if err := g.inv.RemoveEntry(hash); err != nil {
				g.logger.Error(err)
			}
			return DecisionDelegateThenPersist, nil, nil
		}
	}

	return DecisionServeCached, entry, nil
}

func (g *StoreGateway) serve(node *domain.RecipeNode, entry *domain.CacheEntry, repr domain.Representation) (*domain.Artifact, error) {
	if err := g.inv.RecordAccess(entry.RecipeHash, g.now()); err != nil {
		return nil, err
	}
	if err := g.inv.RegisterReference(node.DataSet.String(), entry.RecipeHash); err != nil {
		return nil, err
	}
	g.metrics.CacheHit("store")
	g.logEvent(node, "store: hit for "+entry.RecipeHash)
	return artifactFromFile(entry.FilePath, repr)
}

// populate delegates to the real fetch, materializes the payload into the
// object store and registers the entry. Stream and path requests are
// materialized to a file first, which bounds memory for large transfers.
func (g *StoreGateway) populate(ctx context.Context, node *domain.RecipeNode, hash string, repr domain.Representation) (*domain.Artifact, error) {
	g.metrics.CacheMiss("store")
	g.logEvent(node, "store: miss for "+hash)

	_, err, _ := g.group.Do(hash, func() (any, error) {
		// Another in-flight populate may have won while we waited.
		entry, err := g.inv.Lookup(hash)
		if err != nil || entry != nil {
			return nil, err
		}

		fetchRepr := domain.ReprStream
		if repr == domain.ReprBytes {
			fetchRepr = domain.ReprBytes
		}
		art, err := g.fetcher.FetchArtifact(ctx, node, fetchRepr, false)
		if err != nil {
			return nil, err
		}
		return nil, g.persist(node, hash, art)
	})
	if err != nil {
		return nil, err
	}
	return artifactFromFile(g.inv.ObjectPath(hash), repr)
}

func (g *StoreGateway) persist(node *domain.RecipeNode, hash string, art *domain.Artifact) error {
	path := g.inv.ObjectPath(hash)

	var size int64
	var err error
	switch {
	case art.Stream != nil:
		defer art.Stream.Close() //nolint:errcheck // Best effort close in defer
		size, err = writeObject(path, art.Stream)
	case art.Path != "":
		f, openErr := os.Open(art.Path) //nolint:gosec // Path produced by the fetch collaborator
		if openErr != nil {
			return zerr.Wrap(openErr, "failed to open fetched artifact")
		}
		defer f.Close() //nolint:errcheck // Best effort close in defer
		size, err = writeObject(path, f)
	default:
		size, err = writeObject(path, bytes.NewReader(art.Bytes))
	}
	if err != nil {
		return err
	}

	spec, err := node.ChecksumSpec()
	if err != nil {
		return err
	}
	now := g.now()
	entry := domain.CacheEntry{
		RecipeHash:     hash,
		FilePath:       path,
		SizeBytes:      size,
		CreatedAt:      now,
		LastAccessedAt: now,
		Checksum:       spec,
		Source: domain.SourceRef{
			DataSetID: node.DataSet.String(),
			Driver:    node.Driver.String(),
		},
	}
	if err := g.inv.RegisterEntry(entry); err != nil {
		return err
	}
	return g.inv.RegisterReference(node.DataSet.String(), hash)
}

func (g *StoreGateway) logEvent(node *domain.RecipeNode, msg string) {
	if g.filter.ShouldLogEvent("store", node) {
		g.logger.Info(msg)
	}
}

// artifactFromFile builds the requested representation over a cached
// payload file.
func artifactFromFile(path string, repr domain.Representation) (*domain.Artifact, error) {
	switch repr {
	case domain.ReprBytes:
		data, err := os.ReadFile(path) //nolint:gosec // Path is owned by the inventory
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read cached payload")
		}
		return &domain.Artifact{Bytes: data}, nil
	case domain.ReprStream:
		f, err := os.Open(path) //nolint:gosec // Path is owned by the inventory
		if err != nil {
			return nil, zerr.Wrap(err, "failed to open cached payload")
		}
		return &domain.Artifact{Stream: f}, nil
	case domain.ReprPath:
		return &domain.Artifact{Path: path}, nil
	default:
		return nil, zerr.New("unknown artifact representation")
	}
}
