package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/larder/internal/adapters/metrics"
)

func TestPrometheus_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewPrometheus(reg)
	if err != nil {
		t.Fatalf("NewPrometheus failed: %v", err)
	}

	m.CacheHit("store")
	m.CacheHit("store")
	m.CacheMiss("cache")
	m.Eviction("size")
	m.ChecksumFailure()

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(families))
	}
	for _, f := range families {
		if f.GetName() == "larder_cache_hits_total" {
			if got := f.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("expected 2 store hits, got %v", got)
			}
		}
	}
}

func TestPrometheus_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := metrics.NewPrometheus(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := metrics.NewPrometheus(reg); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}
