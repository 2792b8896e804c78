package domain

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
	"github.com/FACorreiaa/go-shopfront/internal/app/pages"
	"github.com/FACorreiaa/go-shopfront/internal/app/session"
)

// BaseHandler carries the rendering plumbing shared by every page handler:
// layout assembly from the request's session state and the development
// verbosity switch for error pages.
type BaseHandler struct {
	Logger *zap.Logger
	Dev    bool
}

func NewBaseHandler(logger *zap.Logger, dev bool) *BaseHandler {
	return &BaseHandler{Logger: logger, Dev: dev}
}

// newLayoutData builds the per-request layout context from the drained
// session state. Everything the templates see travels through this value;
// nothing ambient.
func (h *BaseHandler) newLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	data := models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       models.MainNav,
		ActiveNav: activeNav,
	}

	if st := session.FromGin(c); st != nil {
		for _, f := range st.Flashes() {
			data.Flashes = append(data.Flashes, models.FlashView{Type: f.Type, Message: f.Message})
		}
		if snap := st.User(); snap != nil && st.IsLoggedIn() {
			data.User = &models.User{ID: snap.ID, Email: snap.Email}
		}
	}
	return data
}

func (h *BaseHandler) render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.Error(err))
	}
}

// RenderPage renders content inside the site layout.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, content templ.Component) {
	h.RenderPageStatus(c, http.StatusOK, title, activeNav, content)
}

// RenderPageStatus is RenderPage with an explicit status code (404 pages and
// friends).
func (h *BaseHandler) RenderPageStatus(c *gin.Context, status int, title, activeNav string, content templ.Component) {
	h.render(c, status, pages.LayoutPage(h.newLayoutData(c, title, activeNav, content)))
}

// RenderNotFound renders the 404 page. Unmatched routes are always safe,
// never escalated.
func (h *BaseHandler) RenderNotFound(c *gin.Context) {
	h.RenderPageStatus(c, http.StatusNotFound, "Page Not Found", "", pages.NotFoundPage())
}

// RenderServerError renders the 500 page, logging the cause server-side and
// exposing it in the page only for development deployments.
func (h *BaseHandler) RenderServerError(c *gin.Context, err error) {
	h.Logger.Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	detail := ""
	if h.Dev && err != nil {
		detail = err.Error()
	}
	h.RenderPageStatus(c, http.StatusInternalServerError, "Server Error", "", pages.ServerErrorPage(detail))
	c.Abort()
}
