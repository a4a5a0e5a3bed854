package stubapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/catalog-consumer/internal/domain"
	"github.com/samvad-hq/catalog-consumer/internal/logger"
)

const healthMessage = "Processing service is running"

// processingServer answers the processing routes ({success, data} envelopes).
// It reads the catalog store directly instead of proxying over HTTP.
type processingServer struct {
	store *ProductStore
	log   logger.Logger
	now   func() time.Time
}

func (s *processingServer) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   healthMessage,
			"timestamp": s.now().UTC().Format(time.RFC3339),
		})
	}
}

func (s *processingServer) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := s.store.List(c.Request.Context())
		if err != nil {
			s.internalError(c, "list products", err)
			return
		}
		items := processItems(products)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    items,
			"summary": summarize(items),
		})
	}
}

func (s *processingServer) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Request body must be a JSON object"})
			return
		}
		if errs := validateInput(in, false); errs != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  errs,
			})
			return
		}

		loadDate := ""
		if in.LoadDate != nil {
			loadDate = normalizeLoadDate(*in.LoadDate)
		}
		p, err := s.store.Create(c.Request.Context(), strings.TrimSpace(*in.Name), *in.CountryCode, loadDate)
		if err != nil {
			s.internalError(c, "create product", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product created successfully",
			"data": domain.CreatedItem{
				Name:        p.Name,
				SKU:         p.SKU,
				CountryCode: p.CountryCode,
				Country:     domain.Country{Code: p.CountryCode, Name: CountryName(p.CountryCode)},
			},
		})
	}
}

func (s *processingServer) handleStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := s.store.List(c.Request.Context())
		if err != nil {
			s.internalError(c, "stats", err)
			return
		}
		stats := domain.Statistics{
			TotalProducts: len(products),
			ByCountry:     make(map[string]domain.CountryCount),
		}
		for _, p := range products {
			cc := stats.ByCountry[p.CountryCode]
			cc.Name = CountryName(p.CountryCode)
			cc.Count++
			stats.ByCountry[p.CountryCode] = cc
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
	}
}

func (s *processingServer) handleByCountry() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(c.Param("code"))
		if !isCountryCode(code) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Country code must be 2 letters"})
			return
		}
		products, err := s.store.ListByCountry(c.Request.Context(), code)
		if err != nil {
			s.internalError(c, "list by country", err)
			return
		}
		items := processItems(products)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"country": domain.CountryInfo{Code: code, Name: CountryName(code), TotalProducts: len(items)},
			"data":    items,
		})
	}
}

func (s *processingServer) internalError(c *gin.Context, action string, err error) {
	s.log.ErrorObj("processing "+action+" failed", "stub_error", map[string]any{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error processing products"})
}

func processItems(products []Product) []domain.ProcessedItem {
	items := make([]domain.ProcessedItem, 0, len(products))
	for _, p := range products {
		items = append(items, domain.ProcessedItem{
			Item:    p.Item(),
			Country: domain.Country{Code: p.CountryCode, Name: CountryName(p.CountryCode)},
		})
	}
	return items
}

// summarize counts items and lists their distinct country codes in sorted order.
func summarize(items []domain.ProcessedItem) domain.ProcessedSummary {
	seen := make(map[string]struct{})
	countries := make([]string, 0)
	for _, it := range items {
		if _, ok := seen[it.CountryCode]; ok {
			continue
		}
		seen[it.CountryCode] = struct{}{}
		countries = append(countries, it.CountryCode)
	}
	sort.Strings(countries)
	return domain.ProcessedSummary{TotalCount: len(items), Countries: countries}
}
