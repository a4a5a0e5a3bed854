package stubapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/catalog-consumer/internal/domain"
	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02 15:04:05"

// ErrNotFound is returned when no active product matches the id.
var ErrNotFound = errors.New("product not found")

// Product is a catalog row as exposed by the catalog router.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	CountryCode string `json:"country_code"`
	LoadDate    string `json:"load_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Item converts the row into the shared domain model.
func (p Product) Item() domain.Item {
	return domain.Item{
		ID:          domain.ItemID(strconv.FormatInt(p.ID, 10)),
		Name:        p.Name,
		SKU:         p.SKU,
		CountryCode: p.CountryCode,
		LoadDate:    p.LoadDate,
	}
}

// ProductInput carries the writable product fields. Nil fields are left untouched on update.
type ProductInput struct {
	Name        *string `json:"name"`
	CountryCode *string `json:"country_code"`
	LoadDate    *string `json:"load_date"`
}

// ProductStore keeps products in SQLite with soft delete.
type ProductStore struct {
	db  *sql.DB
	now func() time.Time
}

var seedProducts = []struct {
	name, sku, country, loadDate string
}{
	{"iPhone 15", "CTUS1", "US", "2024-01-15 10:00:00"},
	{"Samsung Galaxy S24", "CTKR2", "KR", "2024-01-16 11:30:00"},
	{"Xiaomi Mi 13", "CTCN3", "CN", "2024-01-17 09:45:00"},
	{"Google Pixel 8", "CTUS4", "US", "2024-01-18 14:20:00"},
	{"Sony Xperia 1 V", "CTJP5", "JP", "2024-01-19 16:10:00"},
}

// OpenStore opens the SQLite database at dsn, creates the schema and seeds
// sample products into an empty table.
func OpenStore(ctx context.Context, dsn string) (*ProductStore, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: gets its own database.
	db.SetMaxOpenConns(1)

	s := &ProductStore{db: db, now: time.Now}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if err := s.seed(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed products: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *ProductStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *ProductStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			sku TEXT NOT NULL UNIQUE,
			country_code TEXT NOT NULL,
			load_date TEXT NOT NULL,
			deleted_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	return err
}

func (s *ProductStore) seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	stamp := s.now().UTC().Format(dateLayout)
	for _, p := range seedProducts {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO products (name, sku, country_code, load_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			p.name, p.sku, p.country, p.loadDate, stamp, stamp,
		); err != nil {
			return fmt.Errorf("insert %s: %w", p.sku, err)
		}
	}
	return nil
}

const selectProducts = `SELECT id, name, sku, country_code, load_date, created_at, updated_at FROM products WHERE deleted_at IS NULL`

// List returns the active products ordered by id.
func (s *ProductStore) List(ctx context.Context) ([]Product, error) {
	return s.query(ctx, selectProducts+` ORDER BY id`)
}

// ListByCountry returns the active products of one country.
func (s *ProductStore) ListByCountry(ctx context.Context, code string) ([]Product, error) {
	return s.query(ctx, selectProducts+` AND country_code = ? ORDER BY id`, strings.ToUpper(code))
}

func (s *ProductStore) query(ctx context.Context, q string, args ...any) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.CountryCode, &p.LoadDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns one active product.
func (s *ProductStore) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := s.db.QueryRowContext(ctx, selectProducts+` AND id = ?`, id).
		Scan(&p.ID, &p.Name, &p.SKU, &p.CountryCode, &p.LoadDate, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a product. The SKU is CT{country}{next id}, where the next id
// also counts soft-deleted rows. An empty load date defaults to now.
func (s *ProductStore) Create(ctx context.Context, name, countryCode, loadDate string) (Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Product{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var lastID int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM products`).Scan(&lastID); err != nil {
		return Product{}, fmt.Errorf("next id: %w", err)
	}

	now := s.now().UTC().Format(dateLayout)
	code := strings.ToUpper(countryCode)
	p := Product{
		ID:          lastID + 1,
		Name:        name,
		SKU:         fmt.Sprintf("CT%s%d", code, lastID+1),
		CountryCode: code,
		LoadDate:    loadDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.LoadDate == "" {
		p.LoadDate = now
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO products (id, name, sku, country_code, load_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.SKU, p.CountryCode, p.LoadDate, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Product{}, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of in to an active product.
func (s *ProductStore) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.CountryCode != nil {
		p.CountryCode = strings.ToUpper(*in.CountryCode)
	}
	if in.LoadDate != nil && *in.LoadDate != "" {
		p.LoadDate = *in.LoadDate
	}
	p.UpdatedAt = s.now().UTC().Format(dateLayout)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = ?, country_code = ?, load_date = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		p.Name, p.CountryCode, p.LoadDate, p.UpdatedAt, p.ID,
	); err != nil {
		return Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

// Delete soft-deletes an active product.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		s.now().UTC().Format(dateLayout), id,
	)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
