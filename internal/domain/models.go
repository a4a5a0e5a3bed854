package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Domain contains the item models exchanged with the catalog and processing services.

// Item is a catalog record as served by the Catalog Service.
type Item struct {
	ID          ItemID `json:"id,omitempty"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	CountryCode string `json:"country_code"`
	LoadDate    string `json:"load_date,omitempty"`
}

// Country is the country metadata resolved by the Processing Service.
type Country struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// ProcessedItem is an item normalized by the Processing Service.
type ProcessedItem struct {
	Item
	Country Country `json:"country"`
}

// ProcessedSummary aggregates the processed item list.
type ProcessedSummary struct {
	TotalCount int      `json:"total_count"`
	Countries  []string `json:"countries"`
}

// ProcessedItems is the full processed-list body.
type ProcessedItems struct {
	Items   []ProcessedItem  `json:"data,omitempty"`
	Summary ProcessedSummary `json:"summary"`
}

// HealthStatus is the processing service health answer.
type HealthStatus struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// CreatedItem is the item returned by a successful creation request.
type CreatedItem struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	CountryCode string  `json:"country_code,omitempty"`
	Country     Country `json:"country"`
}

// CountryInfo describes one country bucket of processed items.
type CountryInfo struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	TotalProducts int    `json:"total_products"`
}

// CountryItems lists processed items filtered by country.
type CountryItems struct {
	Country CountryInfo     `json:"country"`
	Items   []ProcessedItem `json:"data"`
}

// CountryCount is a per-country tally in Statistics.
type CountryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics is the aggregate report of the Processing Service.
type Statistics struct {
	TotalProducts int                     `json:"total_products"`
	ByCountry     map[string]CountryCount `json:"by_country"`
}

// ItemID is the service-assigned row id. Catalogs send it either as a number
// or as a string; both decode.
type ItemID string

func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ItemID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as JSON numbers.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
