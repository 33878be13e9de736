package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/servewell/storefront/internal/asset"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	"github.com/servewell/storefront/internal/cart"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	"github.com/servewell/storefront/internal/catalog"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	"github.com/servewell/storefront/internal/config"
	"github.com/servewell/storefront/internal/instance"
	instancedomain "github.com/servewell/storefront/internal/instance/domain"
	"github.com/servewell/storefront/internal/observability"
	obslogger "github.com/servewell/storefront/internal/observability/logger"
	obsmetrics "github.com/servewell/storefront/internal/observability/metrics"
	obstracing "github.com/servewell/storefront/internal/observability/tracing"
	"github.com/servewell/storefront/internal/order"
	orderdomain "github.com/servewell/storefront/internal/order/domain"
	"github.com/servewell/storefront/internal/organization"
	organizationdomain "github.com/servewell/storefront/internal/organization/domain"
	"github.com/servewell/storefront/internal/pricing"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(registerGin),
	organization.Module,
	catalog.Module,
	pricing.Module,
	asset.Module,
	cart.Module,
	order.Module,
	instance.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())
	r.Use(ShopContext())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	organizationSvc organizationdomain.Service
	catalogSvc      catalogdomain.Service
	pricingSvc      pricingdomain.Service
	assetSvc        assetdomain.Service
	cartSvc         cartdomain.Service
	orderSvc        orderdomain.Service
	instanceSvc     instancedomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	OrganizationSvc organizationdomain.Service
	CatalogSvc      catalogdomain.Service
	PricingSvc      pricingdomain.Service
	AssetSvc        assetdomain.Service
	CartSvc         cartdomain.Service
	OrderSvc        orderdomain.Service
	InstanceSvc     instancedomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		organizationSvc: p.OrganizationSvc,
		catalogSvc:      p.CatalogSvc,
		pricingSvc:      p.PricingSvc,
		assetSvc:        p.AssetSvc,
		cartSvc:         p.CartSvc,
		orderSvc:        p.OrderSvc,
		instanceSvc:     p.InstanceSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")
	{
		api.GET("/categories", s.ListCategories)
		api.GET("/products", s.ListProducts)
		api.GET("/products/:id", s.GetProduct)
		api.GET("/products/:id/variants", s.ListVariants)
		api.GET("/products/:id/accessories", s.ListCompatibleAccessories)
		api.GET("/products/:id/branded-pricing", s.BrandedPricing)
		api.GET("/products/:id/branded-options", s.BrandedOptions)

		api.POST("/design-assets", s.UploadDesignAsset)
		api.GET("/design-assets/:id", s.DownloadDesignAsset)

		api.GET("/cart", s.GetCart)
		api.POST("/cart/lines", s.AddStandardLine)
		api.POST("/cart/configured-lines", s.AddConfiguredLine)
		api.PATCH("/cart/lines/:id", s.UpdateCartLine)
		api.DELETE("/cart/lines/:id", s.RemoveCartLine)

		api.POST("/checkout", s.Checkout)
		api.GET("/orders", s.ListOrders)
		api.GET("/orders/:id", s.GetOrder)
	}

	admin := s.engine.Group("/admin/api/v1")
	{
		admin.POST("/organizations", s.CreateOrganization)
		admin.GET("/organizations", s.ListOrganizations)
		admin.GET("/organizations/:id", s.GetOrganization)
		admin.DELETE("/organizations/:id", s.DeleteOrganization)

		admin.POST("/categories", s.CreateCategory)
		admin.POST("/products", s.CreateProduct)
		admin.PATCH("/products/:id", s.UpdateProduct)
		admin.DELETE("/products/:id", s.DeleteProduct)
		admin.POST("/variants", s.CreateVariant)
		admin.POST("/products/:id/accessories", s.AddCompatibleAccessory)

		admin.POST("/pricing-tiers", s.CreatePricingTier)
		admin.GET("/products/:id/pricing-tiers", s.ListPricingTiers)
		admin.DELETE("/pricing-tiers/:id", s.DeletePricingTier)

		admin.POST("/order-lines/:id/instance-product", s.CreateInstanceProduct)
	}
}
