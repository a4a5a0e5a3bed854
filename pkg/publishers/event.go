package publishers

import (
	"time"

	"github.com/samvad-hq/catalog-consumer/internal/domain"
)

// EventTypeItemCreated marks an item created through the Processing Service.
const EventTypeItemCreated = "item.created"

// Event represents the payload published downstream.
type Event struct {
	Type      string             `json:"type"`
	Source    string             `json:"source"`
	Item      domain.CreatedItem `json:"item"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewItemCreatedEvent wraps an item created at source.
func NewItemCreatedEvent(source string, item domain.CreatedItem) Event {
	return Event{
		Type:      EventTypeItemCreated,
		Source:    source,
		Item:      item,
		CreatedAt: time.Now().UTC(),
	}
}

// CountryCode returns the item's country code, falling back to the resolved country.
func (e Event) CountryCode() string {
	if e.Item.CountryCode != "" {
		return e.Item.CountryCode
	}
	return e.Item.Country.Code
}

// Attributes are the message attributes attached by queue and topic sinks.
func (e Event) Attributes() map[string]string {
	attrs := map[string]string{
		"event_type": e.Type,
		"sku":        e.Item.SKU,
	}
	if cc := e.CountryCode(); cc != "" {
		attrs["country_code"] = cc
	}
	return attrs
}
