package products

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/app/domain"
	"github.com/FACorreiaa/go-shopfront/internal/app/pages"
)

type ProductsHandlers struct {
	*domain.BaseHandler
	catalog *Catalog
	logger  *zap.Logger
}

func NewProductsHandlers(base *domain.BaseHandler, catalog *Catalog, logger *zap.Logger) *ProductsHandlers {
	return &ProductsHandlers{BaseHandler: base, catalog: catalog, logger: logger}
}

// Explore redirects to a random product, as the catalog's landing page.
func (h *ProductsHandlers) Explore(c *gin.Context) {
	item := h.catalog.RandomItem()
	c.Redirect(http.StatusFound, fmt.Sprintf("/products/%s/%s", item.Category, item.ID))
}

// Category renders a category listing. The display query parameter switches
// between grid and details; anything else falls back to grid.
func (h *ProductsHandlers) Category(c *gin.Context) {
	categoryID := c.Param("category")

	category, ok := h.catalog.Category(categoryID)
	if !ok {
		h.RenderNotFound(c)
		return
	}

	display := c.DefaultQuery("display", "grid")
	if display != "grid" && display != "details" {
		display = "grid"
	}

	h.RenderPage(c, "Exploring "+category.Name, "Products", pages.CategoryPage(pages.CategoryPageProps{
		Category: category,
		Items:    h.catalog.Items(categoryID),
		Display:  display,
	}))
}

// Product renders a single product page.
func (h *ProductsHandlers) Product(c *gin.Context) {
	item, ok := h.catalog.Item(c.Param("category"), c.Param("id"))
	if !ok {
		h.RenderNotFound(c)
		return
	}
	h.RenderPage(c, item.Name, "Products", pages.ProductPage(item))
}
