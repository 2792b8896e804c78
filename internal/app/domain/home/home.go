package home

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/app/domain"
	"github.com/FACorreiaa/go-shopfront/internal/app/pages"
)

type HomeHandlers struct {
	*domain.BaseHandler
	logger *zap.Logger
}

func NewHomeHandlers(base *domain.BaseHandler, logger *zap.Logger) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base, logger: logger}
}

func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	h.RenderPage(c, "Home", "Home", pages.HomePage())
}

func (h *HomeHandlers) ShowAboutPage(c *gin.Context) {
	skills := []string{
		"Session-backed storefronts",
		"PostgreSQL data modelling",
		"Server-rendered web apps",
		"Observability and tracing",
	}
	h.RenderPage(c, "About", "About", pages.AboutPage(skills))
}

func (h *HomeHandlers) ShowContactPage(c *gin.Context) {
	h.RenderPage(c, "Contact", "Contact", pages.ContactPage())
}
