package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.trai.ch/larder/internal/adapters/logger"
	"go.trai.ch/larder/internal/core/domain"
)

func TestLogger_WritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("cache hit")
	l.Warn("dangling entry pruned")
	l.Error(errors.New("index unreadable"))

	out := buf.String()
	for _, want := range []string{"cache hit", "dangling entry pruned", "index unreadable"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCategoryFilter(t *testing.T) {
	node := &domain.RecipeNode{Kind: domain.KindStorage}

	all := logger.NewCategoryFilter()
	if !all.ShouldLogEvent("store", node) {
		t.Error("empty filter should allow everything")
	}

	only := logger.NewCategoryFilter("gc")
	if only.ShouldLogEvent("store", node) {
		t.Error("filter allowed a category it should block")
	}
	if !only.ShouldLogEvent("gc", node) {
		t.Error("filter blocked an allowed category")
	}
}
