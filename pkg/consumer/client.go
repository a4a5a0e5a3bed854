// Package consumer is the client façade over the Catalog and Processing services.
//
// Every operation returns its documented failure value (nil or an empty slice)
// together with a *Error when anything goes wrong, so callers may use the
// result without inspecting the error.
package consumer

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/samvad-hq/catalog-consumer/internal/domain"
	"github.com/samvad-hq/catalog-consumer/pkg/httpclient"
)

// Operation names used in errors, logs and metrics.
const (
	OpHealthCheck         = "health_check"
	OpFetchRawItems       = "fetch_raw_items"
	OpFetchProcessedItems = "fetch_processed_items"
	OpCreateItem          = "create_item"
	OpFetchItemsByCountry = "fetch_items_by_country"
	OpFetchStatistics     = "fetch_statistics"

	noMessageMarker = "<none>"
)

var jsonHeaders = map[string]string{"Accept": "application/json"}

// Client talks to the Catalog Service and the Processing Service.
// It holds no state besides its configuration.
type Client struct {
	catalogURL    string
	processingURL string
	http          httpclient.Client
	log           Logger
}

// New builds a Client for the two base addresses.
func New(catalogURL, processingURL string, opts ...Option) *Client {
	c := &Client{
		catalogURL:    strings.TrimRight(catalogURL, "/"),
		processingURL: strings.TrimRight(processingURL, "/"),
		log:           noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(0)
	}
	return c
}

// HealthCheck asks the Processing Service for its health message.
func (c *Client) HealthCheck(ctx context.Context) (*domain.HealthStatus, error) {
	var body healthResponse
	if e := c.getJSON(ctx, OpHealthCheck, c.processingURL+"/health", &body); e != nil {
		return nil, c.fail(e)
	}
	if body.Message == nil {
		return nil, c.fail(missingField(OpHealthCheck, "message"))
	}

	status := &domain.HealthStatus{Message: *body.Message, Timestamp: body.Timestamp}
	c.succeed(OpHealthCheck)
	c.log.InfoObj("health check", "health", map[string]any{
		"message": status.Message,
	})
	return status, nil
}

// FetchRawItems lists the unprocessed items of the Catalog Service.
// On failure it returns an empty, non-nil slice.
func (c *Client) FetchRawItems(ctx context.Context) ([]domain.Item, error) {
	var body itemsResponse
	if e := c.getJSON(ctx, OpFetchRawItems, c.catalogURL+"/products", &body); e != nil {
		return []domain.Item{}, c.fail(e)
	}
	if body.Data == nil {
		return []domain.Item{}, c.fail(missingField(OpFetchRawItems, "data"))
	}

	items := *body.Data
	if items == nil {
		items = []domain.Item{}
	}
	c.succeed(OpFetchRawItems)
	c.log.InfoObj("catalog items fetched", "catalog_result", map[string]any{
		"count": len(items),
	})
	return items, nil
}

// FetchProcessedItems lists items normalized by the Processing Service
// together with its summary. The summary is returned as received.
func (c *Client) FetchProcessedItems(ctx context.Context) (*domain.ProcessedItems, error) {
	var body processedResponse
	if e := c.getJSON(ctx, OpFetchProcessedItems, c.processingURL+"/products", &body); e != nil {
		return nil, c.fail(e)
	}
	switch {
	case body.Summary == nil:
		return nil, c.fail(missingField(OpFetchProcessedItems, "summary"))
	case body.Summary.TotalCount == nil:
		return nil, c.fail(missingField(OpFetchProcessedItems, "summary.total_count"))
	case body.Summary.Countries == nil:
		return nil, c.fail(missingField(OpFetchProcessedItems, "summary.countries"))
	}

	result := &domain.ProcessedItems{
		Items: body.Data,
		Summary: domain.ProcessedSummary{
			TotalCount: *body.Summary.TotalCount,
			Countries:  *body.Summary.Countries,
		},
	}
	c.succeed(OpFetchProcessedItems)
	c.log.InfoObj("processed items fetched", "processing_summary", map[string]any{
		"total_count": result.Summary.TotalCount,
		"countries":   result.Summary.Countries,
	})
	return result, nil
}

// CreateItem asks the Processing Service to create an item. A response whose
// success flag is false or absent yields a KindRejected error carrying the
// service message.
func (c *Client) CreateItem(ctx context.Context, name, countryCode string) (*domain.CreatedItem, error) {
	payload := createRequest{Name: name, CountryCode: countryCode}
	resp, err := c.http.Post(ctx, c.processingURL+"/products", payload, jsonHeaders)
	if err != nil {
		return nil, c.fail(transportError(OpCreateItem, err))
	}

	status := resp.StatusCode()
	var body createResponse
	if err := decodeBody(resp.Body(), &body); err != nil || body.Success == nil {
		if !isSuccess(status) {
			return nil, c.fail(statusError(OpCreateItem, status, resp.Body()))
		}
		if err != nil {
			return nil, c.fail(decodeError(OpCreateItem, status, err))
		}
	}

	// A success flag on a non-2xx reply is not trusted; an explicit false still carries the message.
	if body.Success != nil && *body.Success && !isSuccess(status) {
		return nil, c.fail(statusError(OpCreateItem, status, resp.Body()))
	}
	if body.Success == nil || !*body.Success {
		message := ""
		if body.Message != nil {
			message = *body.Message
		}
		return nil, c.reject(rejectedError(OpCreateItem, status, message))
	}

	switch {
	case body.Data == nil:
		return nil, c.fail(missingField(OpCreateItem, "data"))
	case body.Data.SKU == nil:
		return nil, c.fail(missingField(OpCreateItem, "data.sku"))
	case body.Data.Country == nil:
		return nil, c.fail(missingField(OpCreateItem, "data.country"))
	case body.Data.Country.Name == nil:
		return nil, c.fail(missingField(OpCreateItem, "data.country.name"))
	}

	item := &domain.CreatedItem{
		Name:        body.Data.Name,
		SKU:         *body.Data.SKU,
		CountryCode: body.Data.CountryCode,
		Country: domain.Country{
			Code: body.Data.Country.Code,
			Name: *body.Data.Country.Name,
		},
	}
	c.succeed(OpCreateItem)
	c.log.InfoObj("item created", "created_item", map[string]any{
		"name":    item.Name,
		"sku":     item.SKU,
		"country": item.Country.Name,
	})
	return item, nil
}

// FetchItemsByCountry lists processed items of one country.
func (c *Client) FetchItemsByCountry(ctx context.Context, countryCode string) (*domain.CountryItems, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	endpoint := c.processingURL + "/country/" + url.PathEscape(code) + "/products"

	var body countryItemsResponse
	if e := c.getJSON(ctx, OpFetchItemsByCountry, endpoint, &body); e != nil {
		return nil, c.fail(e)
	}
	if body.Country == nil {
		return nil, c.fail(missingField(OpFetchItemsByCountry, "country"))
	}

	result := &domain.CountryItems{Country: *body.Country, Items: body.Data}
	c.succeed(OpFetchItemsByCountry)
	c.log.InfoObj("country items fetched", "country_result", map[string]any{
		"country":        code,
		"total_products": result.Country.TotalProducts,
	})
	return result, nil
}

// FetchStatistics reads the aggregate report of the Processing Service.
func (c *Client) FetchStatistics(ctx context.Context) (*domain.Statistics, error) {
	var body statisticsResponse
	if e := c.getJSON(ctx, OpFetchStatistics, c.processingURL+"/products/stats", &body); e != nil {
		return nil, c.fail(e)
	}
	if body.Data == nil {
		return nil, c.fail(missingField(OpFetchStatistics, "data"))
	}

	stats := body.Data
	c.succeed(OpFetchStatistics)
	c.log.InfoObj("statistics fetched", "statistics", map[string]any{
		"total_products": stats.TotalProducts,
		"by_country":     stats.ByCountry,
	})
	return stats, nil
}

// getJSON issues a GET and decodes a 2xx body into dst.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, dst any) *Error {
	resp, err := c.http.Get(ctx, endpoint, jsonHeaders)
	if err != nil {
		return transportError(op, err)
	}
	status := resp.StatusCode()
	if !isSuccess(status) {
		return statusError(op, status, resp.Body())
	}
	if err := decodeBody(resp.Body(), dst); err != nil {
		return decodeError(op, status, err)
	}
	return nil
}

func (c *Client) succeed(op string) {
	requestsTotal.WithLabelValues(op, outcomeOK).Inc()
}

func (c *Client) fail(e *Error) *Error {
	requestsTotal.WithLabelValues(e.Op, string(e.Kind)).Inc()
	c.log.ErrorObj(e.Op+" failed", "consumer_error", map[string]any{
		"operation":   e.Op,
		"kind":        string(e.Kind),
		"status_code": e.StatusCode,
		"error":       e.Error(),
	})
	return e
}

func (c *Client) reject(e *Error) *Error {
	requestsTotal.WithLabelValues(e.Op, string(e.Kind)).Inc()
	message := e.Reason
	if message == "" {
		message = noMessageMarker
	}
	c.log.WarnObj("item creation rejected", "creation_failure", map[string]any{
		"message":     message,
		"status_code": e.StatusCode,
	})
	return e
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
