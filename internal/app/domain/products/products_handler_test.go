package products

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/app/domain"
	"github.com/FACorreiaa/go-shopfront/internal/app/session"
)

func newProductsTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := session.NewManager(session.NewMemoryStore(), session.Config{
		Secret: "products-test-secret",
		TTL:    time.Hour,
	}, zap.NewNop())
	require.NoError(t, err)

	base := domain.NewBaseHandler(zap.NewNop(), false)
	h := NewProductsHandlers(base, NewCatalog(), zap.NewNop())

	r := gin.New()
	r.Use(manager.Middleware())
	r.GET("/products", h.Explore)
	r.GET("/products/:category", h.Category)
	r.GET("/products/:category/:id", h.Product)
	return r
}

func getPage(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExploreRedirectsToARandomProduct(t *testing.T) {
	r := newProductsTestRouter(t)

	w := getPage(r, "/products")
	require.Equal(t, http.StatusFound, w.Code)

	// The redirect target must itself resolve.
	target := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(target, "/products/"))
	followed := getPage(r, target)
	assert.Equal(t, http.StatusOK, followed.Code)
}

func TestCategoryPage(t *testing.T) {
	r := newProductsTestRouter(t)

	w := getPage(r, "/products/audio")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Studio Headphones")
	assert.Contains(t, w.Body.String(), "Shelf Speakers")
}

func TestCategoryDisplayToggle(t *testing.T) {
	r := newProductsTestRouter(t)

	grid := getPage(r, "/products/audio?display=grid")
	require.Equal(t, http.StatusOK, grid.Code)
	assert.Contains(t, grid.Body.String(), "products-grid")

	details := getPage(r, "/products/audio?display=details")
	require.Equal(t, http.StatusOK, details.Code)
	assert.Contains(t, details.Body.String(), "products-details")

	// Unknown display values fall back to the grid.
	bogus := getPage(r, "/products/audio?display=carousel")
	require.Equal(t, http.StatusOK, bogus.Code)
	assert.Contains(t, bogus.Body.String(), "products-grid")
}

func TestUnknownCategoryIs404(t *testing.T) {
	r := newProductsTestRouter(t)
	assert.Equal(t, http.StatusNotFound, getPage(r, "/products/garden").Code)
}

func TestProductPage(t *testing.T) {
	r := newProductsTestRouter(t)

	w := getPage(r, "/products/desk/laptop-stand")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Laptop Stand")
	assert.Contains(t, w.Body.String(), "39")
}

func TestUnknownProductIs404(t *testing.T) {
	r := newProductsTestRouter(t)
	assert.Equal(t, http.StatusNotFound, getPage(r, "/products/desk/flying-carpet").Code)
	// Right id, wrong category.
	assert.Equal(t, http.StatusNotFound, getPage(r, "/products/audio/laptop-stand").Code)
}
