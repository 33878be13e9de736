package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	organizationdomain "github.com/servewell/storefront/internal/organization/domain"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultOrgName = "House Accounts"
	defaultOrgSlug = "house-accounts"
)

// EnsureDefaultOrg seeds the fallback organization for startup bootstrap.
func EnsureDefaultOrg(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureDefaultOrgTx(ctx, tx, node)
		return err
	})
}

// EnsureDemoCatalog seeds a small demo catalog: one tiered template product
// with its volume pricing and one pack-priced standard product. Idempotent.
func EnsureDemoCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		category, err := ensureCategoryTx(ctx, tx, node, "Drinkware", "drinkware", now)
		if err != nil {
			return err
		}

		template, err := ensureProductTx(ctx, tx, node, catalogdomain.Product{
			CategoryID: &category.ID,
			Kind:       catalogdomain.ProductKindCustomizable,
			Name:       "Double Wall Paper Cup",
			Slug:       "double-wall-paper-cup",
			Active:     true,
		}, now)
		if err != nil {
			return err
		}

		tiers := []pricingdomain.Tier{
			{ProductID: template.ID, Size: "8oz", QuantityThreshold: 1000, UnitPrice: decimal.RequireFromString("0.30"), CaseQuantity: 500},
			{ProductID: template.ID, Size: "8oz", QuantityThreshold: 5000, UnitPrice: decimal.RequireFromString("0.18"), CaseQuantity: 500},
			{ProductID: template.ID, Size: "12oz", QuantityThreshold: 1000, UnitPrice: decimal.RequireFromString("0.34"), CaseQuantity: 500},
			{ProductID: template.ID, Size: "12oz", QuantityThreshold: 5000, UnitPrice: decimal.RequireFromString("0.21"), CaseQuantity: 500},
		}
		for _, tier := range tiers {
			if err := ensureTierTx(ctx, tx, node, tier, now); err != nil {
				return err
			}
		}

		standard, err := ensureProductTx(ctx, tx, node, catalogdomain.Product{
			CategoryID: &category.ID,
			Kind:       catalogdomain.ProductKindStandard,
			Name:       "Plain White Cup",
			Slug:       "plain-white-cup",
			Active:     true,
		}, now)
		if err != nil {
			return err
		}

		packSize := 1000
		return ensureVariantTx(ctx, tx, node, catalogdomain.Variant{
			ProductID:     standard.ID,
			Name:          "Case of 1000",
			SKU:           "PWC-1000",
			Price:         decimal.RequireFromString("10.00"),
			PackSize:      &packSize,
			StockQuantity: 250,
			Active:        true,
		}, now)
	})
}

func ensureDefaultOrgTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*organizationdomain.Organization, error) {
	var org organizationdomain.Organization
	err := tx.WithContext(ctx).Where("slug = ?", defaultOrgSlug).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	org = organizationdomain.Organization{
		ID:        node.Generate(),
		Name:      defaultOrgName,
		Slug:      defaultOrgSlug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func ensureCategoryTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name, slug string, now time.Time) (*catalogdomain.Category, error) {
	var category catalogdomain.Category
	err := tx.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = catalogdomain.Category{
		ID:        node.Generate(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func ensureProductTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, product catalogdomain.Product, now time.Time) (*catalogdomain.Product, error) {
	var existing catalogdomain.Product
	err := tx.WithContext(ctx).Where("slug = ?", product.Slug).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product.ID = node.Generate()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func ensureTierTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, tier pricingdomain.Tier, now time.Time) error {
	var existing pricingdomain.Tier
	err := tx.WithContext(ctx).
		Where("product_id = ? AND size = ? AND quantity_threshold = ?", tier.ProductID, tier.Size, tier.QuantityThreshold).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	tier.ID = node.Generate()
	tier.CreatedAt = now
	tier.UpdatedAt = now
	return tx.WithContext(ctx).Create(&tier).Error
}

func ensureVariantTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, variant catalogdomain.Variant, now time.Time) error {
	var existing catalogdomain.Variant
	err := tx.WithContext(ctx).Where("sku = ?", variant.SKU).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	variant.ID = node.Generate()
	variant.CreatedAt = now
	variant.UpdatedAt = now
	return tx.WithContext(ctx).Create(&variant).Error
}
