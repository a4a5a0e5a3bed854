package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/samvad-hq/catalog-consumer/internal/config"
	"github.com/samvad-hq/catalog-consumer/internal/domain"
	"github.com/samvad-hq/catalog-consumer/internal/logger"
	"github.com/samvad-hq/catalog-consumer/internal/storage"
	"github.com/samvad-hq/catalog-consumer/pkg/consumer"
	"github.com/samvad-hq/catalog-consumer/pkg/httpclient"
	"github.com/samvad-hq/catalog-consumer/pkg/publishers"
)

const (
	startBanner    = "Starting catalog consumer demo"
	completeBanner = "Demo complete. Catalog and processing services are communicating correctly."
)

// Demo runs the fixed consumer sequence against both upstream services and
// reports the results on its output. Upstream failures never abort the run.
type Demo struct {
	cfg    *config.Config
	client Consumer
	fanout Announcer
	store  storage.Store
	log    logger.Logger
	out    io.Writer
}

// DemoOption customizes a Demo.
type DemoOption func(*Demo)

// WithOutput redirects the printed report (stdout by default).
func WithOutput(w io.Writer) DemoOption {
	return func(d *Demo) {
		if w != nil {
			d.out = w
		}
	}
}

// WithConsumer replaces the façade built from config.
func WithConsumer(c Consumer) DemoOption {
	return func(d *Demo) {
		if c != nil {
			d.client = c
		}
	}
}

// NewDemo builds the demo runtime: the façade, the created-item journal and
// the optional publishers fan-out.
func NewDemo(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...DemoOption) (*Demo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	d := &Demo{cfg: cfg, log: log, out: os.Stdout}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = consumer.New(cfg.CatalogBaseURL, cfg.ProcessingBaseURL,
			consumer.WithHTTPClient(httpclient.NewRestyClient(cfg.HTTPTimeout)),
			consumer.WithLogger(log),
		)
	}

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}
	d.fanout = fanout

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		RetentionTTL:    cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	d.store = store
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"retention_ttl_seconds":    int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return d, nil
}

// buildFanout loads the publishers file. An empty path disables announcements.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, cfg := range enabled {
		summaries = append(summaries, map[string]string{"id": cfg.ID, "type": cfg.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Run executes the demo sequence once. Context cancellation stops it between steps.
func (d *Demo) Run(ctx context.Context) error {
	if d == nil || d.client == nil {
		return fmt.Errorf("demo is not initialized")
	}
	defer d.close()

	start := time.Now()
	d.printf("\n%s\n\n", startBanner)

	if health, _ := d.client.HealthCheck(ctx); health != nil {
		d.printf("Health check: %s\n", health.Message)
	} else {
		d.printf("Health check failed\n")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, _ := d.client.FetchRawItems(ctx)
	d.printf("Catalog items: %d found\n", len(raw))
	if err := ctx.Err(); err != nil {
		return err
	}

	if processed, _ := d.client.FetchProcessedItems(ctx); processed != nil {
		d.printf("Processed items: %d total\n", processed.Summary.TotalCount)
		d.printf("Countries involved: %s\n", strings.Join(processed.Summary.Countries, ", "))
	} else {
		d.printf("Processed items unavailable\n")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	created, err := d.client.CreateItem(ctx, d.cfg.DemoItemName, d.cfg.DemoCountryCode)
	if created != nil {
		d.printf("Item created: %s\n", created.Name)
		d.printf("SKU: %s\n", created.SKU)
		d.printf("Country: %s\n", created.Country.Name)
		d.afterCreate(ctx, created)
	} else {
		d.printf("Item creation failed: %s\n", failureReason(err))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if d.cfg.DemoReports {
		d.reports(ctx)
	}

	if len(raw) > 0 {
		sample := raw[0]
		d.printf("\nSample catalog item:\n")
		d.printf("Name: %s\n", sample.Name)
		d.printf("SKU: %s\n", sample.SKU)
		d.printf("Country: %s\n", sample.CountryCode)
	}

	d.printf("\n%s\n", completeBanner)
	d.log.InfoObj("demo completed", "demo_meta", map[string]any{
		"elapsed_ms":   time.Since(start).Milliseconds(),
		"raw_items":    len(raw),
		"item_created": created != nil,
	})
	return nil
}

// afterCreate journals and announces a created item. Failures are logged only.
func (d *Demo) afterCreate(ctx context.Context, item *domain.CreatedItem) {
	seen, err := d.store.SeenItem(item.SKU)
	if err != nil {
		d.log.ErrorObj("journal lookup failed", "error", err)
	}
	if seen {
		d.log.WarnObj("sku already recorded", "sku", item.SKU)
	}

	countryCode := item.CountryCode
	if countryCode == "" {
		countryCode = item.Country.Code
	}
	if countryCode == "" {
		countryCode = d.cfg.DemoCountryCode
	}
	if err := d.store.RecordItem(storage.Record{
		SKU:         item.SKU,
		Name:        item.Name,
		CountryCode: countryCode,
		CountryName: item.Country.Name,
	}); err != nil {
		d.log.ErrorObj("journal write failed", "error", err)
	}
	if records, err := d.store.Items(); err != nil {
		d.log.ErrorObj("journal read failed", "error", err)
	} else if len(records) > 0 {
		d.printf("Journal entries: %d\n", len(records))
	}

	if d.fanout == nil || d.fanout.Size() == 0 {
		return
	}
	delivered, err := d.fanout.Publish(ctx, publishers.NewItemCreatedEvent(d.cfg.ProcessingBaseURL, *item))
	if err != nil {
		d.log.ErrorObj("item announcement failed", "error", err)
	}
	d.log.InfoObj("item announced", "publish_meta", map[string]any{
		"sku":        item.SKU,
		"delivered":  delivered,
		"publishers": d.fanout.Size(),
	})
}

func (d *Demo) reports(ctx context.Context) {
	code := d.cfg.ReportCountryCode
	if byCountry, _ := d.client.FetchItemsByCountry(ctx, code); byCountry != nil {
		d.printf("Items from %s: %d\n", byCountry.Country.Code, byCountry.Country.TotalProducts)
	} else {
		d.printf("Items from %s unavailable\n", code)
	}

	stats, _ := d.client.FetchStatistics(ctx)
	if stats == nil {
		d.printf("Statistics unavailable\n")
		return
	}
	d.printf("Statistics: %d items\n", stats.TotalProducts)
	for _, cc := range slices.Sorted(maps.Keys(stats.ByCountry)) {
		d.printf("  %s (%s): %d\n", cc, stats.ByCountry[cc].Name, stats.ByCountry[cc].Count)
	}
}

func (d *Demo) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

func (d *Demo) close() {
	if d.fanout != nil {
		if err := d.fanout.Close(); err != nil {
			d.log.ErrorObj("publishers close failed", "error", err)
		}
	}
	if d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		d.log.ErrorObj("storage close failed", "error", err)
	}
}

func failureReason(err error) string {
	var cerr *consumer.Error
	if errors.As(err, &cerr) && cerr.Reason != "" {
		return cerr.Reason
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}
