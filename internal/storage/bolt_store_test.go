package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func TestBoltStoreRecordsAndExpiresItems(t *testing.T) {
	opts := Options{
		RetentionTTL:    time.Hour,
		CleanupInterval: time.Minute,
	}

	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "journal", "consumer.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	clock := time.Now()
	store.now = func() time.Time { return clock }

	seen, err := store.SeenItem("CTBR6")
	if err != nil || seen {
		t.Fatalf("expected unseen item, seen=%v err=%v", seen, err)
	}

	if err := store.RecordItem(Record{SKU: "CTBR6", Name: "Go Demo Product", CountryCode: "BR", CountryName: "Brazil"}); err != nil {
		t.Fatalf("RecordItem: %v", err)
	}

	seen, err = store.SeenItem("CTBR6")
	if err != nil || !seen {
		t.Fatalf("expected item recorded, got seen=%v err=%v", seen, err)
	}

	items, err := store.Items()
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 || items[0].CountryName != "Brazil" {
		t.Fatalf("unexpected items %+v", items)
	}

	// Move the clock past retention and the cleanup cadence.
	clock = clock.Add(2 * time.Hour)

	seen, err = store.SeenItem("CTBR6")
	if err != nil {
		t.Fatalf("SeenItem after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected record to expire")
	}
	items, err = store.Items()
	if err != nil || len(items) != 0 {
		t.Fatalf("expected no live items, got %+v err=%v", items, err)
	}
}

func TestBoltStoreItemsOrderedByCreation(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "consumer.db"), normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer storeRaw.Close()

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	if err := storeRaw.RecordItem(Record{SKU: "B", CreatedAt: base.Add(time.Minute)}); err != nil {
		t.Fatalf("RecordItem B: %v", err)
	}
	if err := storeRaw.RecordItem(Record{SKU: "A", CreatedAt: base}); err != nil {
		t.Fatalf("RecordItem A: %v", err)
	}

	items, err := storeRaw.Items()
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 2 || items[0].SKU != "A" || items[1].SKU != "B" {
		t.Fatalf("unexpected order %+v", items)
	}
}

func TestBoltStoreRejectsEmptySKU(t *testing.T) {
	store, err := NewStore("bbolt", filepath.Join(t.TempDir(), "consumer.db"), Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	if err := store.RecordItem(Record{Name: "nameless"}); err == nil {
		t.Fatalf("expected error for empty sku")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.RecordItem(Record{SKU: "x"}); err != nil {
		t.Fatalf("noop store RecordItem: %v", err)
	}
	if seen, _ := store.SeenItem("x"); seen {
		t.Fatalf("noop store should never report items")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
