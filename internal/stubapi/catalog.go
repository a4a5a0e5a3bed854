package stubapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/catalog-consumer/internal/logger"
)

// catalogServer answers the catalog routes ({ok, data} envelopes).
type catalogServer struct {
	store *ProductStore
	log   logger.Logger
}

func (s *catalogServer) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := s.store.List(c.Request.Context())
		if err != nil {
			s.internalError(c, "list products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "data": products})
	}
}

func (s *catalogServer) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": validationErrors{"body": {"The request body must be a JSON object."}}})
			return
		}
		if errs := validateInput(in, false); errs != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": errs})
			return
		}

		loadDate := ""
		if in.LoadDate != nil {
			loadDate = normalizeLoadDate(*in.LoadDate)
		}
		p, err := s.store.Create(c.Request.Context(), *in.Name, *in.CountryCode, loadDate)
		if err != nil {
			s.internalError(c, "create product", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "msg": "Product created successfully", "data": p})
	}
}

func (s *catalogServer) handleGet() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		p, err := s.store.Get(c.Request.Context(), id)
		if s.notFound(c, err, "Product does not exist") {
			return
		}
		if err != nil {
			s.internalError(c, "get product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "data": p})
	}
}

func (s *catalogServer) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		if _, err := s.store.Get(c.Request.Context(), id); s.notFound(c, err, "Product not found") {
			return
		}

		var in ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": validationErrors{"body": {"The request body must be a JSON object."}}})
			return
		}
		if errs := validateInput(in, true); errs != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "errors": errs})
			return
		}
		if in.LoadDate != nil {
			normalized := normalizeLoadDate(*in.LoadDate)
			in.LoadDate = &normalized
		}

		p, err := s.store.Update(c.Request.Context(), id, in)
		if s.notFound(c, err, "Product not found") {
			return
		}
		if err != nil {
			s.internalError(c, "update product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Product updated", "data": p})
	}
}

func (s *catalogServer) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		err := s.store.Delete(c.Request.Context(), id)
		if s.notFound(c, err, "Product not found") {
			return
		}
		if err != nil {
			s.internalError(c, "delete product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Product deleted"})
	}
}

// productID parses :id; non-numeric ids answer 404 like a missing row.
func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "msg": "Product does not exist"})
		return 0, false
	}
	return id, true
}

func (s *catalogServer) notFound(c *gin.Context, err error, msg string) bool {
	if !errors.Is(err, ErrNotFound) {
		return false
	}
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "msg": msg})
	return true
}

func (s *catalogServer) internalError(c *gin.Context, action string, err error) {
	s.log.ErrorObj("catalog "+action+" failed", "stub_error", map[string]any{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Internal server error"})
}
