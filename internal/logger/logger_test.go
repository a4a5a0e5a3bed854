package logger

import (
	"testing"

	"github.com/samvad-hq/catalog-consumer/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesObjectUnderKey(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapLogger(zap.New(core))

	log.InfoObj("item created", "item", map[string]any{"sku": "W-001"})
	log.WarnObj("item creation rejected", "message", "duplicate")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "item created" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	item, ok := fields["item"].(map[string]any)
	if !ok || item["sku"] != "W-001" {
		t.Fatalf("item field missing: %#v", fields)
	}
	if entries[1].Level != zap.WarnLevel {
		t.Fatalf("expected warn level, got %v", entries[1].Level)
	}
}

func TestNopLoggerSatisfiesInterface(t *testing.T) {
	var log Logger = NopLogger{}
	log.ErrorObj("ignored", "error", nil)
}

func TestInitSetsPackageLogger(t *testing.T) {
	prev := S
	t.Cleanup(func() { S = prev })

	log, err := Init(&config.Config{AppName: "catalog-consumer-test", LogLevel: "warn"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if log == nil || S == nil || log.s != S {
		t.Fatalf("Init should wrap and publish the same sugared logger")
	}
	if S.Desugar().Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
}
