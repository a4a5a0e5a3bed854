package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const itemBucket = "created_items"

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	retentionTTL    time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(itemBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		retentionTTL:    opts.RetentionTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenItem reports whether a live record exists for sku. Expired records are dropped.
func (b *boltStore) SeenItem(sku string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return false, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return false, err
	}

	var exists bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucket))
		if bucket == nil {
			return fmt.Errorf("item bucket missing")
		}

		key := []byte(sku)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		rec, ok := decodeRecord(value)
		if !ok || !rec.ExpiresAt.After(now) {
			return bucket.Delete(key)
		}

		exists = true
		return nil
	})
	return exists, err
}

// RecordItem stores rec keyed by its SKU, overwriting any previous record.
func (b *boltStore) RecordItem(rec Record) error {
	if b == nil || b.db == nil {
		return nil
	}
	rec.SKU = strings.TrimSpace(rec.SKU)
	if rec.SKU == "" {
		return fmt.Errorf("record requires a sku")
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC()
	}
	rec.ExpiresAt = now.Add(b.retentionTTL).UTC()

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucket))
		if bucket == nil {
			return fmt.Errorf("item bucket missing")
		}
		return bucket.Put([]byte(rec.SKU), raw)
	})
}

// Items returns the live records ordered by creation time.
func (b *boltStore) Items() ([]Record, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := b.now()
	var out []Record
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucket))
		if bucket == nil {
			return fmt.Errorf("item bucket missing")
		}
		return bucket.ForEach(func(_, v []byte) error {
			if rec, ok := decodeRecord(v); ok && rec.ExpiresAt.After(now) {
				out = append(out, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// maybeCleanupExpired removes expired records on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucket))
		if bucket == nil {
			return fmt.Errorf("item bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			rec, ok := decodeRecord(v)
			if !ok || !rec.ExpiresAt.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeRecord decodes a stored record, rejecting entries without expiry.
func decodeRecord(value []byte) (Record, bool) {
	var rec Record
	if err := json.Unmarshal(value, &rec); err != nil {
		return Record{}, false
	}
	if rec.ExpiresAt.IsZero() {
		return Record{}, false
	}
	return rec, true
}
