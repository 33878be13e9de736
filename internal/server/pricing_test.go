package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	assetrepository "github.com/servewell/storefront/internal/asset/repository"
	assetservice "github.com/servewell/storefront/internal/asset/service"
	cartrepository "github.com/servewell/storefront/internal/cart/repository"
	cartservice "github.com/servewell/storefront/internal/cart/service"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	catalogrepository "github.com/servewell/storefront/internal/catalog/repository"
	catalogservice "github.com/servewell/storefront/internal/catalog/service"
	"github.com/servewell/storefront/internal/clock"
	"github.com/servewell/storefront/internal/config"
	instanceservice "github.com/servewell/storefront/internal/instance/service"
	"github.com/servewell/storefront/internal/migration"
	orderrepository "github.com/servewell/storefront/internal/order/repository"
	orderservice "github.com/servewell/storefront/internal/order/service"
	organizationrepository "github.com/servewell/storefront/internal/organization/repository"
	organizationservice "github.com/servewell/storefront/internal/organization/service"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	pricingrepository "github.com/servewell/storefront/internal/pricing/repository"
	pricingservice "github.com/servewell/storefront/internal/pricing/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"time"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB, *snowflake.Node) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(migration.AllModels()...))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	catalogRepo := catalogrepository.Provide()
	orgRepo := organizationrepository.Provide()
	pricingRepo := pricingrepository.Provide()
	assetRepo := assetrepository.Provide()
	cartRepo := cartrepository.Provide()
	orderRepo := orderrepository.Provide()

	pricingSvc := pricingservice.New(pricingservice.Params{
		DB: db, Log: log, GenID: node, Repo: pricingRepo, CatalogRepo: catalogRepo,
	})
	catalogSvc := catalogservice.New(catalogservice.Params{
		DB: db, Log: log, GenID: node, Repo: catalogRepo,
	})
	orgSvc := organizationservice.NewService(db, log, node, orgRepo, catalogRepo)
	assetSvc := assetservice.NewService(db, log, node, assetRepo)
	cartSvc := cartservice.New(cartservice.Params{
		DB: db, Log: log, GenID: node, Repo: cartRepo, CatalogRepo: catalogRepo, AssetRepo: assetRepo,
	})
	orderSvc := orderservice.New(orderservice.Params{
		DB: db, Log: log, GenID: node,
		Clock:    clock.NewFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)),
		Repo:     orderRepo, CartRepo: cartRepo, Pricing: pricingSvc,
	})
	instanceSvc := instanceservice.New(instanceservice.Params{
		DB: db, Log: log, GenID: node, OrderRepo: orderRepo, CatalogRepo: catalogRepo, OrgRepo: orgRepo,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	engine.Use(ShopContext())

	srv := NewServer(ServerParams{
		Gin:             engine,
		Cfg:             config.Config{},
		DB:              db,
		GenID:           node,
		OrganizationSvc: orgSvc,
		CatalogSvc:      catalogSvc,
		PricingSvc:      pricingSvc,
		AssetSvc:        assetSvc,
		CartSvc:         cartSvc,
		OrderSvc:        orderSvc,
		InstanceSvc:     instanceSvc,
	})
	return srv, db, node
}

func seedPricedTemplate(t *testing.T, db *gorm.DB, node *snowflake.Node) catalogdomain.Product {
	t.Helper()
	product := catalogdomain.Product{
		ID:   node.Generate(),
		Kind: catalogdomain.ProductKindCustomizable,
		Name: "Double Wall Cup",
		Slug: "double-wall-cup",
	}
	require.NoError(t, db.Create(&product).Error)

	tiers := []pricingdomain.Tier{
		{ID: node.Generate(), ProductID: product.ID, Size: "8oz", QuantityThreshold: 1000, UnitPrice: decimal.RequireFromString("0.30"), CaseQuantity: 500},
		{ID: node.Generate(), ProductID: product.ID, Size: "8oz", QuantityThreshold: 5000, UnitPrice: decimal.RequireFromString("0.18"), CaseQuantity: 500},
	}
	for i := range tiers {
		require.NoError(t, db.Create(&tiers[i]).Error)
	}
	return product
}

func getJSON(t *testing.T, srv *Server, path string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestBrandedPricingSuccessShape(t *testing.T) {
	srv, db, node := newTestServer(t)
	product := seedPricedTemplate(t, db, node)

	code, body := getJSON(t, srv, "/api/v1/products/"+product.ID.String()+"/branded-pricing?size=8oz&quantity=1500")
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, true, body["success"])
	assert.True(t, decimal.RequireFromString(body["price_per_unit"].(string)).Equal(decimal.RequireFromString("0.30")))
	assert.True(t, decimal.RequireFromString(body["total_price"].(string)).Equal(decimal.RequireFromString("450")))
	assert.Equal(t, float64(1500), body["quantity"])
	assert.Equal(t, float64(500), body["case_quantity"])
	assert.Equal(t, float64(3), body["cases_needed"])
}

func TestBrandedPricingErrorMessages(t *testing.T) {
	srv, db, node := newTestServer(t)
	product := seedPricedTemplate(t, db, node)
	base := "/api/v1/products/" + product.ID.String() + "/branded-pricing"

	code, body := getJSON(t, srv, base+"?quantity=1500")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Size and quantity are required", body["error"])

	code, body = getJSON(t, srv, base+"?size=8oz&quantity=500")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Quantity below minimum order", body["error"])

	code, body = getJSON(t, srv, base+"?size=16oz&quantity=1500")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No pricing found for this configuration", body["error"])
}

func TestBrandedOptionsShape(t *testing.T) {
	srv, db, node := newTestServer(t)
	product := seedPricedTemplate(t, db, node)

	code, body := getJSON(t, srv, "/api/v1/products/"+product.ID.String()+"/branded-options")
	require.Equal(t, http.StatusOK, code)

	sizes, ok := body["sizes"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"8oz"}, sizes)

	tiers, ok := body["quantity_tiers"].(map[string]any)
	require.True(t, ok)
	thresholds, ok := tiers["8oz"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{float64(1000), float64(5000)}, thresholds)
}

func TestUnknownRouteNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
