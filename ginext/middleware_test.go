//go:build unit
// +build unit

package ginext

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/filters"
	"github.com/Harshal6927/advanced-alchemy/internal/testutil"
)

func performRequest(r *gin.Engine, method string, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerMapsTaxonomy(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(testutil.SetupTestLogger(t)))
	r.GET("/missing", func(c *gin.Context) {
		Error(c, fmt.Errorf("failed to get record: %w", dberrors.ErrNotFound))
	})

	w := performRequest(r, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "failed to get record")
}

func TestErrorHandlerUsesLastError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(testutil.SetupTestLogger(t)))
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(dberrors.ErrNotFound)
		Error(c, dberrors.ErrDuplicateKey)
	})

	w := performRequest(r, http.MethodGet, "/conflict")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestErrorHandlerKeepsWrittenResponses(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(testutil.SetupTestLogger(t)))
	r.GET("/teapot", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": false})
		_ = c.Error(dberrors.ErrDuplicateKey)
	})

	w := performRequest(r, http.MethodGet, "/teapot")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestErrorHandlerIgnoresCleanRequests(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(testutil.SetupTestLogger(t)))
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := performRequest(r, http.MethodGet, "/ok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestFiltersMiddlewareBindsQuery(t *testing.T) {
	cfg := filters.Config{
		IDFilter:       true,
		CreatedAt:      true,
		PaginationType: filters.PaginationLimitOffset,
		Search:         "name",
		SortField:      "created_at",
	}

	r := gin.New()
	r.GET("/notes", Filters(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"filters": len(BoundFilters(c))})
	})

	w := performRequest(r, http.MethodGet, "/notes?currentPage=2&pageSize=5&searchString=alpha")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"filters":3`)
}

func TestFiltersMiddlewareRejectsBadQuery(t *testing.T) {
	cfg := filters.Config{PaginationType: filters.PaginationLimitOffset}

	r := gin.New()
	r.GET("/notes", Filters(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"filters": len(BoundFilters(c))})
	})

	w := performRequest(r, http.MethodGet, "/notes?pageSize=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "pageSize")
}

func TestFiltersMiddlewarePanicsOnInvalidConfig(t *testing.T) {
	assert.Panics(t, func() {
		Filters(filters.Config{PaginationType: "keyset"})
	})
}

func TestAccessorsWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, Session(c))
	assert.Nil(t, Engine(c))
	assert.Nil(t, BoundFilters(c))
}

func TestRequestRepositoryWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := RequestRepository[struct{}](c, testutil.SetupTestLogger(t))
	assert.ErrorIs(t, err, dberrors.ErrImproperConfiguration)
}
