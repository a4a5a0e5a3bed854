package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps a local journal of items created through the demo.

// Record is a journal entry for one created item.
type Record struct {
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Store tracks created item SKUs.
type Store interface {
	Close() error
	SeenItem(sku string) (bool, error)
	RecordItem(rec Record) error
	Items() ([]Record, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	RetentionTTL    time.Duration
	CleanupInterval time.Duration
}

const (
	defaultRetentionTTL    = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.RetentionTTL <= 0 {
		opts.RetentionTTL = defaultRetentionTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                  { return nil }
func (noopStore) SeenItem(string) (bool, error) { return false, nil }
func (noopStore) RecordItem(Record) error       { return nil }
func (noopStore) Items() ([]Record, error)      { return nil, nil }
