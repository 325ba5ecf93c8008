package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/api/handler"
	"github.com/voltmarket/market-client/internal/api/middleware"
	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
	"github.com/voltmarket/market-client/internal/pkg/validation"
)

// Options configures the development backend router.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
	// Registerer and Gatherer back the /metrics endpoint. A private registry
	// is used when Registerer is nil.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the Echo instance serving every backend route under /api.
func NewRouter(store ports.Marketplace, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	if opts.Registerer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer, opts.Gatherer = reg, reg
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "market_api",
		Registerer: opts.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(store, opts.JWTSecret, opts.TokenTTL)
	userHandler := handler.NewUserHandler(store)
	shopHandler := handler.NewShopHandler(store)
	catalogHandler := handler.NewCatalogHandler(store)
	adminHandler := handler.NewAdminHandler(store)

	auth := middleware.Auth(opts.JWTSecret)
	optionalAuth := middleware.OptionalAuth(opts.JWTSecret)
	shopOnly := middleware.RBAC(domain.RoleShop)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	customerOnly := middleware.RBAC(domain.RoleCustomer)

	e.GET("/health", handler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))

	g := e.Group("/api")

	// --- Auth ---
	g.POST("/auth/register", authHandler.Register)
	g.POST("/auth/login", authHandler.Login)
	g.POST("/auth/logout", authHandler.Logout, auth)

	// --- Wallet & packages ---
	g.GET("/wallet", shopHandler.Wallet, auth, shopOnly)
	g.POST("/wallet/deposit", shopHandler.Deposit, auth, shopOnly)
	g.GET("/packages", catalogHandler.Packages)
	g.GET("/packages/shop/my-packages", shopHandler.MyPackages, auth, shopOnly)
	g.POST("/packages/purchase", shopHandler.PurchasePackage, auth, shopOnly)

	// --- Products ---
	g.GET("/products", catalogHandler.Products)
	g.GET("/products/shop/my-products", shopHandler.MyProducts, auth, shopOnly)
	g.GET("/products/:id", catalogHandler.Product)
	g.POST("/products", shopHandler.CreateProduct, auth, shopOnly)
	g.PUT("/products/:id", shopHandler.UpdateProduct, auth, shopOnly)
	g.DELETE("/products/:id", shopHandler.DeleteProduct, auth, shopOnly)
	g.PUT("/products/:id/approve", adminHandler.ReviewProduct, auth, adminOnly)

	// --- Admin ---
	admin := g.Group("/admin", auth, adminOnly)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id/ban", adminHandler.BanUser)
	admin.GET("/products", adminHandler.Products)
	admin.GET("/revenue", adminHandler.Revenue)

	// --- Customer profile ---
	g.GET("/users/profile", userHandler.Profile, auth, customerOnly)
	g.PUT("/users/profile", userHandler.UpdateProfile, auth, customerOnly)

	// --- Contacts ---
	g.GET("/contacts/check/:productId", catalogHandler.CheckContact, optionalAuth)
	g.POST("/contacts", catalogHandler.CreateContact, optionalAuth)
	g.GET("/contacts/shop/my-contacts", shopHandler.Contacts, auth, shopOnly)
	g.PUT("/contacts/:id/status", shopHandler.UpdateContactStatus, auth, shopOnly)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
