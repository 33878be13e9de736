package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	assetrepository "github.com/servewell/storefront/internal/asset/repository"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	cartrepository "github.com/servewell/storefront/internal/cart/repository"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	catalogrepository "github.com/servewell/storefront/internal/catalog/repository"
	"github.com/servewell/storefront/internal/shopctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type cartFixture struct {
	svc  cartdomain.Service
	db   *gorm.DB
	node *snowflake.Node
	ctx  context.Context
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Product{},
		&catalogdomain.Variant{},
		&assetdomain.DesignAsset{},
		&cartdomain.Cart{},
		&cartdomain.Line{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        cartrepository.Provide(),
		CatalogRepo: catalogrepository.Provide(),
		AssetRepo:   assetrepository.Provide(),
	})

	ctx := shopctx.WithUserID(context.Background(), node.Generate())
	return &cartFixture{svc: svc, db: db, node: node, ctx: ctx}
}

func (f *cartFixture) seedStandardVariant(t *testing.T, sku string, price string, packSize int, stock int) catalogdomain.Variant {
	t.Helper()
	product := catalogdomain.Product{
		ID:   f.node.Generate(),
		Kind: catalogdomain.ProductKindStandard,
		Name: "Plain Cup " + sku,
		Slug: "plain-cup-" + sku,
	}
	require.NoError(t, f.db.Create(&product).Error)

	variant := catalogdomain.Variant{
		ID:            f.node.Generate(),
		ProductID:     product.ID,
		Name:          "Case",
		SKU:           sku,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Active:        true,
	}
	if packSize > 0 {
		variant.PackSize = &packSize
	}
	require.NoError(t, f.db.Create(&variant).Error)
	return variant
}

func (f *cartFixture) seedTemplateAndDesign(t *testing.T) (catalogdomain.Product, assetdomain.DesignAsset) {
	t.Helper()
	template := catalogdomain.Product{
		ID:   f.node.Generate(),
		Kind: catalogdomain.ProductKindCustomizable,
		Name: "Double Wall Cup",
		Slug: "double-wall-cup",
	}
	require.NoError(t, f.db.Create(&template).Error)

	design := assetdomain.DesignAsset{
		ID:          f.node.Generate(),
		Filename:    "logo.png",
		ContentType: "image/png",
		ByteSize:    4,
		Checksum:    "abcd",
		Data:        []byte{1, 2, 3, 4},
	}
	require.NoError(t, f.db.Create(&design).Error)
	return template, design
}

func TestAddStandardLinePackPricing(t *testing.T) {
	f := newCartFixture(t)
	f.seedStandardVariant(t, "PWC-1000", "10.00", 1000, 50)

	resp, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-1000", Quantity: 1500})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	// 1500 units at 1000 per pack buys two packs.
	assert.True(t, decimal.RequireFromString(resp.Lines[0].LineTotal).Equal(decimal.RequireFromString("20")))
	assert.Equal(t, 1500, resp.Lines[0].Quantity)
}

func TestAddStandardLineAccumulates(t *testing.T) {
	f := newCartFixture(t)
	f.seedStandardVariant(t, "PWC-500", "5.00", 0, 50)

	_, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-500", Quantity: 2})
	require.NoError(t, err)
	resp, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-500", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 5, resp.Lines[0].Quantity)
	assert.True(t, decimal.RequireFromString(resp.Lines[0].LineTotal).Equal(decimal.RequireFromString("25")))
}

func TestAddStandardLineNegativeRemoves(t *testing.T) {
	f := newCartFixture(t)
	f.seedStandardVariant(t, "PWC-200", "5.00", 0, 50)

	_, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-200", Quantity: 2})
	require.NoError(t, err)
	resp, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-200", Quantity: -2})
	require.NoError(t, err)

	assert.Empty(t, resp.Lines)
}

func TestAddStandardLineRejections(t *testing.T) {
	f := newCartFixture(t)
	f.seedStandardVariant(t, "OOS-1", "5.00", 0, 0)

	_, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "", Quantity: 1})
	assert.ErrorIs(t, err, cartdomain.ErrInvalidSKU)

	_, err = f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "NOPE", Quantity: 1})
	assert.ErrorIs(t, err, cartdomain.ErrInvalidSKU)

	_, err = f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "OOS-1", Quantity: 1})
	assert.ErrorIs(t, err, cartdomain.ErrOutOfStock)
}

func TestAddConfiguredLine(t *testing.T) {
	f := newCartFixture(t)
	template, design := f.seedTemplateAndDesign(t)

	resp, err := f.svc.AddConfiguredLine(f.ctx, cartdomain.AddConfiguredLineRequest{
		ProductID:     template.ID.String(),
		Quantity:      5000,
		UnitPrice:     "0.18",
		Configuration: map[string]any{"size": "8oz", "print_colors": 2},
		DesignAssetID: design.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)

	line := resp.Lines[0]
	assert.True(t, decimal.RequireFromString(line.LineTotal).Equal(decimal.RequireFromString("900")))
	assert.Equal(t, "8oz", line.Configuration["size"])
	require.NotNil(t, line.DesignAssetID)
	assert.Equal(t, design.ID.String(), *line.DesignAssetID)
}

func TestAddConfiguredLineValidation(t *testing.T) {
	f := newCartFixture(t)
	template, design := f.seedTemplateAndDesign(t)

	base := cartdomain.AddConfiguredLineRequest{
		ProductID:     template.ID.String(),
		Quantity:      1000,
		UnitPrice:     "0.30",
		Configuration: map[string]any{"size": "8oz"},
		DesignAssetID: design.ID.String(),
	}

	req := base
	req.Configuration = nil
	_, err := f.svc.AddConfiguredLine(f.ctx, req)
	assert.ErrorIs(t, err, cartdomain.ErrMissingConfiguration)

	req = base
	req.Configuration = map[string]any{"print_colors": 2}
	_, err = f.svc.AddConfiguredLine(f.ctx, req)
	assert.ErrorIs(t, err, cartdomain.ErrMissingConfiguration)

	req = base
	req.UnitPrice = "0"
	_, err = f.svc.AddConfiguredLine(f.ctx, req)
	assert.ErrorIs(t, err, cartdomain.ErrInvalidUnitPrice)

	req = base
	req.DesignAssetID = f.node.Generate().String()
	_, err = f.svc.AddConfiguredLine(f.ctx, req)
	assert.ErrorIs(t, err, cartdomain.ErrMissingDesign)

	// Configured lines attach to template products only.
	standard := f.seedStandardVariant(t, "STD-9", "5.00", 0, 10)
	req = base
	req.ProductID = standard.ProductID.String()
	_, err = f.svc.AddConfiguredLine(f.ctx, req)
	assert.ErrorIs(t, err, cartdomain.ErrInvalidProduct)
}

func TestUpdateLineQuantity(t *testing.T) {
	f := newCartFixture(t)
	f.seedStandardVariant(t, "PWC-300", "10.00", 1000, 50)

	resp, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-300", Quantity: 500})
	require.NoError(t, err)
	lineID := resp.Lines[0].ID

	resp, err = f.svc.UpdateLineQuantity(f.ctx, lineID, 2500)
	require.NoError(t, err)
	assert.Equal(t, 2500, resp.Lines[0].Quantity)
	assert.True(t, decimal.RequireFromString(resp.Lines[0].LineTotal).Equal(decimal.RequireFromString("30")))

	// Zero quantity removes the line.
	resp, err = f.svc.UpdateLineQuantity(f.ctx, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestRemoveLineOwnership(t *testing.T) {
	f := newCartFixture(t)
	f.seedStandardVariant(t, "PWC-400", "5.00", 0, 50)

	resp, err := f.svc.AddStandardLine(f.ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-400", Quantity: 1})
	require.NoError(t, err)
	lineID := resp.Lines[0].ID

	// Another user cannot touch the line.
	otherCtx := shopctx.WithUserID(context.Background(), f.node.Generate())
	_, err = f.svc.RemoveLine(otherCtx, lineID)
	assert.Error(t, err)

	resp, err = f.svc.RemoveLine(f.ctx, lineID)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestAnonymousCartByToken(t *testing.T) {
	f := newCartFixture(t)
	f.seedStandardVariant(t, "PWC-600", "5.00", 0, 50)

	ctx := shopctx.WithCartToken(context.Background(), "anon-token-1")
	resp, err := f.svc.AddStandardLine(ctx, cartdomain.AddStandardLineRequest{SKU: "PWC-600", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)

	// Same token sees the same cart.
	again, err := f.svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID)
}
