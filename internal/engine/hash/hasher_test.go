package hash_test

import (
	"errors"
	"testing"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/engine/hash"
)

func storageNode(driver string, params map[string]domain.ParamValue) *domain.RecipeNode {
	return &domain.RecipeNode{
		Kind:   domain.KindStorage,
		Driver: domain.NewInternedString(driver),
		Params: params,
	}
}

func datasetNode(id, driver string, params map[string]domain.ParamValue) *domain.RecipeNode {
	return &domain.RecipeNode{
		ID:     domain.NewInternedString(id),
		Kind:   domain.KindDataSet,
		Driver: domain.NewInternedString(driver),
		Params: params,
		Storage: []*domain.RecipeNode{
			storageNode("http", map[string]domain.ParamValue{
				"url": domain.LiteralParam("https://example.org/" + id),
			}),
		},
		Loader: &domain.RecipeNode{
			Kind:   domain.KindLoader,
			Driver: domain.NewInternedString("csv"),
			Types:  []string{"table.Frame"},
		},
	}
}

func TestComputeHash_Deterministic(t *testing.T) {
	h := hash.NewHasher(hash.NewRegistry())

	node := storageNode("s3", map[string]domain.ParamValue{
		"bucket": domain.LiteralParam("data"),
		"key":    domain.LiteralParam("raw/2024.csv"),
		"retry":  domain.LiteralParam(3),
	})

	first, err := h.ComputeHash(node, nil)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	second, err := h.ComputeHash(node, nil)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if first != second {
		t.Errorf("hash not deterministic: %s vs %s", first, second)
	}
	if len(first) != 16 {
		t.Errorf("expected 16 hex digit digest, got %q", first)
	}
}

func TestComputeHash_ParamChangesDigest(t *testing.T) {
	h := hash.NewHasher(hash.NewRegistry())

	a := storageNode("s3", map[string]domain.ParamValue{"key": domain.LiteralParam("one")})
	b := storageNode("s3", map[string]domain.ParamValue{"key": domain.LiteralParam("two")})

	ha, err := h.ComputeHash(a, nil)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := h.ComputeHash(b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ha == hb {
		t.Error("different params produced identical hashes")
	}
}

func TestComputeHash_ToggleIndependence(t *testing.T) {
	h := hash.NewHasher(hash.NewRegistry())

	enabled := storageNode("s3", map[string]domain.ParamValue{
		"key":  domain.LiteralParam("raw.csv"),
		"save": domain.LiteralParam(true),
	})
	disabled := storageNode("s3", map[string]domain.ParamValue{
		"key":  domain.LiteralParam("raw.csv"),
		"save": domain.LiteralParam(false),
	})

	he, err := h.ComputeHash(enabled, []string{domain.ParamSave})
	if err != nil {
		t.Fatal(err)
	}
	hd, err := h.ComputeHash(disabled, []string{domain.ParamSave})
	if err != nil {
		t.Fatal(err)
	}
	if he != hd {
		t.Errorf("toggling the save flag changed the recipe hash: %s vs %s", he, hd)
	}
}

func TestComputeHash_RefFoldsReferencedDigest(t *testing.T) {
	registry := hash.NewRegistry()
	h := hash.NewHasher(registry)

	base := datasetNode("base", "pipeline", map[string]domain.ParamValue{
		"window": domain.LiteralParam(7),
	})
	if err := registry.Register(base); err != nil {
		t.Fatal(err)
	}

	derived := datasetNode("derived", "pipeline", map[string]domain.ParamValue{
		"source": domain.RefParam("base"),
	})

	before, err := h.ComputeHash(derived, nil)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	// Changing the referenced dataset must change the referrer's hash.
	base.Params["window"] = domain.LiteralParam(14)
	after, err := h.ComputeHash(derived, nil)
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Error("mutating a referenced dataset did not change the referrer's hash")
	}
}

// Diamond: A references B and C, both reference D. D's contribution must be
// identical on both paths, and mutating D must shift A's hash consistently.
func TestComputeHash_DiamondSharing(t *testing.T) {
	registry := hash.NewRegistry()
	h := hash.NewHasher(registry)

	d := datasetNode("D", "pipeline", map[string]domain.ParamValue{
		"seed": domain.LiteralParam(1),
	})
	b := datasetNode("B", "pipeline", map[string]domain.ParamValue{
		"source": domain.RefParam("D"),
	})
	c := datasetNode("C", "pipeline", map[string]domain.ParamValue{
		"source": domain.RefParam("D"),
	})
	a := datasetNode("A", "pipeline", map[string]domain.ParamValue{
		"left":  domain.RefParam("B"),
		"right": domain.RefParam("C"),
	})
	for _, node := range []*domain.RecipeNode{a, b, c, d} {
		if err := registry.Register(node); err != nil {
			t.Fatal(err)
		}
	}

	hashA1, err := h.ComputeHash(a, nil)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	hashB1, err := h.ComputeHash(b, nil)
	if err != nil {
		t.Fatal(err)
	}
	hashC1, err := h.ComputeHash(c, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Mutate D and recompute everything.
	d.Params["seed"] = domain.LiteralParam(2)

	hashA2, err := h.ComputeHash(a, nil)
	if err != nil {
		t.Fatal(err)
	}
	hashB2, err := h.ComputeHash(b, nil)
	if err != nil {
		t.Fatal(err)
	}
	hashC2, err := h.ComputeHash(c, nil)
	if err != nil {
		t.Fatal(err)
	}

	if hashA1 == hashA2 {
		t.Error("mutating D did not change A's hash")
	}
	if hashB1 == hashB2 || hashC1 == hashC2 {
		t.Error("mutating D did not propagate to both B and C")
	}

	// Reverting D must restore the original digests exactly: both paths
	// contribute the same value, with no per-path drift.
	d.Params["seed"] = domain.LiteralParam(1)
	hashA3, err := h.ComputeHash(a, nil)
	if err != nil {
		t.Fatal(err)
	}
	if hashA3 != hashA1 {
		t.Errorf("reverting D did not restore A's hash: %s vs %s", hashA3, hashA1)
	}
}

func TestComputeHash_CycleDetected(t *testing.T) {
	registry := hash.NewRegistry()
	h := hash.NewHasher(registry)

	x := datasetNode("X", "pipeline", map[string]domain.ParamValue{
		"source": domain.RefParam("Y"),
	})
	y := datasetNode("Y", "pipeline", map[string]domain.ParamValue{
		"source": domain.RefParam("X"),
	})
	if err := registry.Register(x); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(y); err != nil {
		t.Fatal(err)
	}

	_, err := h.ComputeHash(x, nil)
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestComputeHash_MissingDependency(t *testing.T) {
	h := hash.NewHasher(hash.NewRegistry())

	node := datasetNode("orphan", "pipeline", map[string]domain.ParamValue{
		"source": domain.RefParam("nowhere"),
	})

	_, err := h.ComputeHash(node, nil)
	if !errors.Is(err, domain.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
}

func TestComputeTypeHash_Deterministic(t *testing.T) {
	h := hash.NewHasher(nil)

	if h.ComputeTypeHash("table.Frame") != h.ComputeTypeHash("table.Frame") {
		t.Error("type hash not deterministic")
	}
	if h.ComputeTypeHash("table.Frame") == h.ComputeTypeHash("table.Frame@v2") {
		t.Error("distinct type descriptors produced identical hashes")
	}
}
