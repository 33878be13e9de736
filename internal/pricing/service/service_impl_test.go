package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	catalogrepository "github.com/servewell/storefront/internal/catalog/repository"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	pricingrepository "github.com/servewell/storefront/internal/pricing/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newPricingService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalogdomain.Product{}, &pricingdomain.Tier{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        pricingrepository.Provide(),
		CatalogRepo: catalogrepository.Provide(),
	})
	return svc.(*Service), db, node
}

func seedTemplate(t *testing.T, db *gorm.DB, node *snowflake.Node) catalogdomain.Product {
	t.Helper()
	product := catalogdomain.Product{
		ID:   node.Generate(),
		Kind: catalogdomain.ProductKindCustomizable,
		Name: "Double Wall Paper Cup",
		Slug: "double-wall-paper-cup",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedTier(t *testing.T, db *gorm.DB, node *snowflake.Node, productID snowflake.ID, size string, threshold int, unitPrice string, caseQty int) {
	t.Helper()
	tier := pricingdomain.Tier{
		ID:                node.Generate(),
		ProductID:         productID,
		Size:              size,
		QuantityThreshold: threshold,
		UnitPrice:         decimal.RequireFromString(unitPrice),
		CaseQuantity:      caseQty,
	}
	require.NoError(t, db.Create(&tier).Error)
}

func TestCalculateMissingParameters(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)
	seedTier(t, db, node, product.ID, "8oz", 1000, "0.30", 500)

	_, err := svc.Calculate(context.Background(), product.ID.String(), "", 1500)
	assert.ErrorIs(t, err, pricingdomain.ErrMissingParameters)

	_, err = svc.Calculate(context.Background(), product.ID.String(), "8oz", 0)
	assert.ErrorIs(t, err, pricingdomain.ErrMissingParameters)
}

func TestCalculateBelowMinimumOrder(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)
	seedTier(t, db, node, product.ID, "8oz", 500, "0.30", 500)

	// Below-minimum wins even when a tier would technically match.
	_, err := svc.Calculate(context.Background(), product.ID.String(), "8oz", 999)
	assert.ErrorIs(t, err, pricingdomain.ErrBelowMinimumOrder)
}

func TestCalculateNoPricingFound(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)
	seedTier(t, db, node, product.ID, "8oz", 2000, "0.30", 500)

	// Quantity sits below the lowest threshold for the size.
	_, err := svc.Calculate(context.Background(), product.ID.String(), "8oz", 1500)
	assert.ErrorIs(t, err, pricingdomain.ErrNoPricingFound)

	// Unknown size.
	_, err = svc.Calculate(context.Background(), product.ID.String(), "16oz", 2500)
	assert.ErrorIs(t, err, pricingdomain.ErrNoPricingFound)

	// Unknown product.
	_, err = svc.Calculate(context.Background(), node.Generate().String(), "8oz", 2500)
	assert.ErrorIs(t, err, pricingdomain.ErrNoPricingFound)
}

func TestCalculateFloorTierBoundaries(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)
	seedTier(t, db, node, product.ID, "8oz", 1000, "0.30", 500)
	seedTier(t, db, node, product.ID, "8oz", 5000, "0.18", 500)

	// One unit under the next threshold keeps the lower tier's price.
	quote, err := svc.Calculate(context.Background(), product.ID.String(), "8oz", 4999)
	require.NoError(t, err)
	assert.True(t, quote.UnitPrice.Equal(decimal.RequireFromString("0.30")))

	// The threshold itself is inclusive.
	quote, err = svc.Calculate(context.Background(), product.ID.String(), "8oz", 5000)
	require.NoError(t, err)
	assert.True(t, quote.UnitPrice.Equal(decimal.RequireFromString("0.18")))
}

func TestCalculateQuote(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)
	seedTier(t, db, node, product.ID, "8oz", 1000, "0.30", 500)
	seedTier(t, db, node, product.ID, "8oz", 5000, "0.18", 500)

	quote, err := svc.Calculate(context.Background(), product.ID.String(), "8oz", 1500)
	require.NoError(t, err)
	assert.True(t, quote.UnitPrice.Equal(decimal.RequireFromString("0.30")))
	assert.True(t, quote.TotalPrice.Equal(decimal.RequireFromString("450")))
	assert.Equal(t, 1500, quote.Quantity)
	assert.Equal(t, 500, quote.CaseQuantity)
	assert.Equal(t, 3, quote.CasesNeeded)

	quote, err = svc.Calculate(context.Background(), product.ID.String(), "8oz", 5000)
	require.NoError(t, err)
	assert.True(t, quote.UnitPrice.Equal(decimal.RequireFromString("0.18")))
	assert.True(t, quote.TotalPrice.Equal(decimal.RequireFromString("900")))
	assert.Equal(t, 10, quote.CasesNeeded)
}

func TestCalculateExactTotal(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)
	seedTier(t, db, node, product.ID, "12oz", 1000, "0.0345", 250)

	quote, err := svc.Calculate(context.Background(), product.ID.String(), "12oz", 1001)
	require.NoError(t, err)
	assert.True(t, quote.TotalPrice.Equal(quote.UnitPrice.Mul(decimal.NewFromInt(1001))))
	// Partial cases round up.
	assert.Equal(t, 5, quote.CasesNeeded)
}

func TestAvailableOptions(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)
	seedTier(t, db, node, product.ID, "8oz", 1000, "0.30", 500)
	seedTier(t, db, node, product.ID, "8oz", 5000, "0.18", 500)
	seedTier(t, db, node, product.ID, "12oz", 1000, "0.34", 500)

	sizes, err := svc.AvailableSizes(context.Background(), product.ID.String())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"8oz", "12oz"}, sizes)

	thresholds, err := svc.AvailableQuantities(context.Background(), product.ID.String(), "8oz")
	require.NoError(t, err)
	assert.Equal(t, []int{1000, 5000}, thresholds)
}

func TestCreateTierValidation(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)

	_, err := svc.CreateTier(context.Background(), pricingdomain.CreateTierRequest{
		ProductID: product.ID.String(), Size: "", QuantityThreshold: 1000, UnitPrice: "0.30", CaseQuantity: 500,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidSize)

	_, err = svc.CreateTier(context.Background(), pricingdomain.CreateTierRequest{
		ProductID: product.ID.String(), Size: "8oz", QuantityThreshold: 0, UnitPrice: "0.30", CaseQuantity: 500,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidThreshold)

	_, err = svc.CreateTier(context.Background(), pricingdomain.CreateTierRequest{
		ProductID: product.ID.String(), Size: "8oz", QuantityThreshold: 1000, UnitPrice: "-1", CaseQuantity: 500,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidUnitPrice)

	// Tiers attach to template products only.
	standard := catalogdomain.Product{
		ID:   node.Generate(),
		Kind: catalogdomain.ProductKindStandard,
		Name: "Plain Cup",
		Slug: "plain-cup",
	}
	require.NoError(t, db.Create(&standard).Error)
	_, err = svc.CreateTier(context.Background(), pricingdomain.CreateTierRequest{
		ProductID: standard.ID.String(), Size: "8oz", QuantityThreshold: 1000, UnitPrice: "0.30", CaseQuantity: 500,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidProduct)
}

func TestCreateTierDuplicate(t *testing.T) {
	svc, db, node := newPricingService(t)
	product := seedTemplate(t, db, node)

	req := pricingdomain.CreateTierRequest{
		ProductID: product.ID.String(), Size: "8oz", QuantityThreshold: 1000, UnitPrice: "0.30", CaseQuantity: 500,
	}
	_, err := svc.CreateTier(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateTier(context.Background(), req)
	assert.ErrorIs(t, err, pricingdomain.ErrDuplicateTier)
}
