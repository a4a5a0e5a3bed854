package consumer

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/samvad-hq/catalog-consumer/internal/domain"
)

// Response schemas per endpoint. Required fields are pointers so that an
// absent key is detected instead of silently zero-valued.

type healthResponse struct {
	Message   *string `json:"message"`
	Timestamp string  `json:"timestamp"`
}

type itemsResponse struct {
	Data *[]domain.Item `json:"data"`
}

type processedResponse struct {
	Data    []domain.ProcessedItem `json:"data"`
	Summary *summaryResponse       `json:"summary"`
}

type summaryResponse struct {
	TotalCount *int      `json:"total_count"`
	Countries  *[]string `json:"countries"`
}

type createRequest struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

type createResponse struct {
	Success *bool                `json:"success"`
	Message *string              `json:"message"`
	Data    *createdItemResponse `json:"data"`
}

type createdItemResponse struct {
	Name        string           `json:"name"`
	SKU         *string          `json:"sku"`
	CountryCode string           `json:"country_code"`
	Country     *countryResponse `json:"country"`
}

type countryResponse struct {
	Code string  `json:"code"`
	Name *string `json:"name"`
}

type countryItemsResponse struct {
	Country *domain.CountryInfo    `json:"country"`
	Data    []domain.ProcessedItem `json:"data"`
}

type statisticsResponse struct {
	Data *domain.Statistics `json:"data"`
}

var errEmptyBody = errors.New("empty response body")

// decodeBody unmarshals a JSON body into dst, rejecting empty payloads.
func decodeBody(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(body, dst)
}
