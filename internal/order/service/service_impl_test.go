package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	cartrepository "github.com/servewell/storefront/internal/cart/repository"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	catalogrepository "github.com/servewell/storefront/internal/catalog/repository"
	"github.com/servewell/storefront/internal/clock"
	orderdomain "github.com/servewell/storefront/internal/order/domain"
	orderrepository "github.com/servewell/storefront/internal/order/repository"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	pricingrepository "github.com/servewell/storefront/internal/pricing/repository"
	pricingservice "github.com/servewell/storefront/internal/pricing/service"
	"github.com/servewell/storefront/internal/shopctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderFixture struct {
	svc      orderdomain.Service
	db       *gorm.DB
	node     *snowflake.Node
	userID   snowflake.ID
	ctx      context.Context
	template catalogdomain.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Product{},
		&catalogdomain.Variant{},
		&pricingdomain.Tier{},
		&assetdomain.DesignAsset{},
		&cartdomain.Cart{},
		&cartdomain.Line{},
		&orderdomain.Order{},
		&orderdomain.Line{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	pricingSvc := pricingservice.New(pricingservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        pricingrepository.Provide(),
		CatalogRepo: catalogrepository.Provide(),
	})

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)),
		Repo:     orderrepository.Provide(),
		CartRepo: cartrepository.Provide(),
		Pricing:  pricingSvc,
	})

	template := catalogdomain.Product{
		ID:   node.Generate(),
		Kind: catalogdomain.ProductKindCustomizable,
		Name: "Double Wall Cup",
		Slug: "double-wall-cup",
	}
	require.NoError(t, db.Create(&template).Error)
	require.NoError(t, db.Create(&pricingdomain.Tier{
		ID:                node.Generate(),
		ProductID:         template.ID,
		Size:              "8oz",
		QuantityThreshold: 1000,
		UnitPrice:         decimal.RequireFromString("0.30"),
		CaseQuantity:      500,
	}).Error)

	userID := node.Generate()
	return &orderFixture{
		svc:      svc,
		db:       db,
		node:     node,
		userID:   userID,
		ctx:      shopctx.WithUserID(context.Background(), userID),
		template: template,
	}
}

func (f *orderFixture) seedCart(t *testing.T, lines ...cartdomain.Line) cartdomain.Cart {
	t.Helper()
	cart := cartdomain.Cart{ID: f.node.Generate(), UserID: &f.userID}
	require.NoError(t, f.db.Create(&cart).Error)
	for i := range lines {
		lines[i].ID = f.node.Generate()
		lines[i].CartID = cart.ID
		require.NoError(t, f.db.Create(&lines[i]).Error)
	}
	return cart
}

func (f *orderFixture) configuredLine(unitPrice string, quantity int) cartdomain.Line {
	price := decimal.RequireFromString(unitPrice)
	return cartdomain.Line{
		ProductID:     f.template.ID,
		Quantity:      quantity,
		UnitPrice:     price,
		Configuration: map[string]any{"size": "8oz"},
		LineTotal:     cartdomain.ComputeLineTotal(price, quantity, true, 0),
	}
}

func TestCheckoutRequiresUser(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.svc.Checkout(context.Background())
	assert.ErrorIs(t, err, orderdomain.ErrNoUser)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.svc.Checkout(f.ctx)
	assert.ErrorIs(t, err, orderdomain.ErrEmptyCart)

	f.seedCart(t)
	_, err = f.svc.Checkout(f.ctx)
	assert.ErrorIs(t, err, orderdomain.ErrEmptyCart)
}

func TestCheckoutFreezesCart(t *testing.T) {
	f := newOrderFixture(t)
	cart := f.seedCart(t, f.configuredLine("0.30", 1500))

	orgID := f.node.Generate()
	ctx := shopctx.WithOrgID(f.ctx, orgID)

	resp, err := f.svc.Checkout(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, decimal.RequireFromString(resp.TotalAmount).Equal(decimal.RequireFromString("450")))
	require.NotNil(t, resp.BrandedStatus)
	assert.Equal(t, string(orderdomain.BrandedStatusDesignPending), *resp.BrandedStatus)
	require.NotNil(t, resp.OrganizationID)
	assert.Equal(t, orgID.String(), *resp.OrganizationID)

	// Checkout consumes the cart.
	var remaining int64
	require.NoError(t, f.db.Model(&cartdomain.Line{}).Where("cart_id = ?", cart.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestCheckoutWithoutConfiguredLinesKeepsNullStatus(t *testing.T) {
	f := newOrderFixture(t)
	price := decimal.RequireFromString("10.00")
	f.seedCart(t, cartdomain.Line{
		ProductID: f.template.ID,
		Quantity:  2,
		UnitPrice: price,
		LineTotal: price.Mul(decimal.NewFromInt(2)),
	})

	resp, err := f.svc.Checkout(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, resp.BrandedStatus)
}

func TestCheckoutRejectsStalePrice(t *testing.T) {
	f := newOrderFixture(t)
	// The cart line was priced before the tier table changed.
	f.seedCart(t, f.configuredLine("0.25", 1500))

	_, err := f.svc.Checkout(f.ctx)
	assert.ErrorIs(t, err, orderdomain.ErrStalePrice)
}

func TestGetOrderScopedToUser(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, f.configuredLine("0.30", 1000))

	resp, err := f.svc.Checkout(f.ctx)
	require.NoError(t, err)

	got, err := f.svc.Get(f.ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	otherCtx := shopctx.WithUserID(context.Background(), f.node.Generate())
	_, err = f.svc.Get(otherCtx, resp.ID)
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCart(t, f.configuredLine("0.30", 1000))
	_, err := f.svc.Checkout(f.ctx)
	require.NoError(t, err)

	orders, err := f.svc.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
