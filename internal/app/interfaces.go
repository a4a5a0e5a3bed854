package app

import (
	"context"

	"github.com/samvad-hq/catalog-consumer/internal/domain"
	"github.com/samvad-hq/catalog-consumer/pkg/publishers"
)

// Consumer is the façade surface the demo drives.
type Consumer interface {
	HealthCheck(ctx context.Context) (*domain.HealthStatus, error)
	FetchRawItems(ctx context.Context) ([]domain.Item, error)
	FetchProcessedItems(ctx context.Context) (*domain.ProcessedItems, error)
	CreateItem(ctx context.Context, name, countryCode string) (*domain.CreatedItem, error)
	FetchItemsByCountry(ctx context.Context, countryCode string) (*domain.CountryItems, error)
	FetchStatistics(ctx context.Context) (*domain.Statistics, error)
}

// Announcer fans created-item events out to downstream sinks.
type Announcer interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
	Size() int
	Close() error
}
