// Package dashboard holds the authenticated product-management pages.
package dashboard

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/app/domain"
	"github.com/FACorreiaa/go-shopfront/internal/app/domain/products"
	"github.com/FACorreiaa/go-shopfront/internal/app/pages"
	"github.com/FACorreiaa/go-shopfront/internal/app/session"
)

type DashboardHandlers struct {
	*domain.BaseHandler
	repo   products.ProductRepo
	logger *zap.Logger
}

func NewDashboardHandlers(base *domain.BaseHandler, repo products.ProductRepo, logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{BaseHandler: base, repo: repo, logger: logger}
}

// Index lists the managed products.
func (h *DashboardHandlers) Index(c *gin.Context) {
	list, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		h.RenderServerError(c, err)
		return
	}
	h.RenderPage(c, "Dashboard", "Dashboard", pages.DashboardPage(list))
}

// ShowAddProduct renders the add-product form.
func (h *DashboardHandlers) ShowAddProduct(c *gin.Context) {
	h.RenderPage(c, "Add Product", "Dashboard", pages.AddProductPage())
}

// AddProduct validates the form field by field, queuing one flash per failed
// rule, and inserts the product when everything passes.
func (h *DashboardHandlers) AddProduct(c *gin.Context) {
	st := session.FromGin(c)

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	priceRaw := strings.TrimSpace(c.PostForm("price"))
	image := strings.TrimSpace(c.PostForm("image"))

	var issues []string
	if name == "" {
		issues = append(issues, "Product name is required")
	}
	if description == "" {
		issues = append(issues, "Product description is required")
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if priceRaw == "" || err != nil || price <= 0 {
		issues = append(issues, "Valid product price is required")
	}
	if image == "" {
		issues = append(issues, "Product image URL is required")
	}

	if len(issues) > 0 {
		for _, issue := range issues {
			st.AddFlash(session.FlashError, issue)
		}
		c.Redirect(http.StatusFound, "/dashboard/add-product")
		return
	}

	product, err := h.repo.Add(c.Request.Context(), products.AddProductParams{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
	})
	if err != nil {
		h.RenderServerError(c, err)
		return
	}

	st.AddFlash(session.FlashSuccess, "Product added successfully")
	h.logger.Info("Product created via dashboard", zap.String("product_id", product.ID.String()))
	c.Redirect(http.StatusFound, "/dashboard")
}
