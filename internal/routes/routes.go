package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-shopfront/internal/app/domain"
	"github.com/FACorreiaa/go-shopfront/internal/app/domain/auth"
	"github.com/FACorreiaa/go-shopfront/internal/app/domain/dashboard"
	"github.com/FACorreiaa/go-shopfront/internal/app/domain/home"
	"github.com/FACorreiaa/go-shopfront/internal/app/domain/products"
	"github.com/FACorreiaa/go-shopfront/internal/app/middleware"
	"github.com/FACorreiaa/go-shopfront/internal/app/session"
	"github.com/FACorreiaa/go-shopfront/internal/pkg/config"
)

type AppHandlers struct {
	Home      *home.HomeHandlers
	Auth      *auth.AuthHandlers
	Products  *products.ProductsHandlers
	Dashboard *dashboard.DashboardHandlers
	Static    *domain.BaseHandler
}

// Setup wires the session manager, handlers and route groups onto the engine.
func Setup(r *gin.Engine, dbPool *pgxpool.Pool, store session.Store, cfg *config.Config, log *zap.Logger) error {
	manager, err := session.NewManager(store, session.Config{
		Secret:        cfg.Session.Secret,
		TTL:           cfg.Session.TTL,
		SecureCookies: cfg.Session.SecureCookies,
	}, log)
	if err != nil {
		return err
	}

	handlers := setupDependencies(dbPool, cfg, log)
	setupRouter(r, manager, handlers, log)
	return nil
}

func setupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, log *zap.Logger) *AppHandlers {
	baseHandler := domain.NewBaseHandler(log, cfg.IsDevelopment())

	authRepo := auth.NewPostgresAuthRepo(dbPool, log)
	authService := auth.NewAuthService(authRepo, log)

	productRepo := products.NewPostgresProductRepo(dbPool, log)
	catalog := products.NewCatalog()

	return &AppHandlers{
		Home:      home.NewHomeHandlers(baseHandler, log),
		Auth:      auth.NewAuthHandlers(baseHandler, authService, log),
		Products:  products.NewProductsHandlers(baseHandler, catalog, log),
		Dashboard: dashboard.NewDashboardHandlers(baseHandler, productRepo, log),
		Static:    baseHandler,
	}
}

func setupRouter(r *gin.Engine, manager *session.Manager, h *AppHandlers, log *zap.Logger) {
	// Every browser-facing route runs through the session middleware so a
	// record exists and pending flashes are drained before handlers run.
	r.Use(manager.Middleware())

	r.GET("/", h.Home.ShowHomePage)
	r.GET("/about", h.Home.ShowAboutPage)
	r.GET("/contact", h.Home.ShowContactPage)

	accounts := r.Group("/accounts")
	{
		accounts.GET("/login", h.Auth.ShowLogin)
		accounts.POST("/login", h.Auth.Login)
		accounts.GET("/register", h.Auth.ShowRegister)
		accounts.POST("/register", h.Auth.Register)
		accounts.POST("/logout", h.Auth.Logout)

		accounts.GET("/dashboard", middleware.RequireAuthenticated(), h.Auth.AccountDashboard)
	}

	productsGroup := r.Group("/products")
	{
		productsGroup.GET("", h.Products.Explore)
		productsGroup.GET("/:category", h.Products.Category)
		productsGroup.GET("/:category/:id", h.Products.Product)
	}

	dashboardGroup := r.Group("/dashboard")
	dashboardGroup.Use(middleware.RequireAuthenticated())
	{
		dashboardGroup.GET("", h.Dashboard.Index)
		dashboardGroup.GET("/add-product", h.Dashboard.ShowAddProduct)
		dashboardGroup.POST("/add-product", h.Dashboard.AddProduct)
	}

	// 404 handler - must be last
	r.NoRoute(func(c *gin.Context) {
		log.Info("404 - Page not found",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("ip", c.ClientIP()),
		)
		h.Static.RenderNotFound(c)
	})
}
