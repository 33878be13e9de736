package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateProduct(ctx context.Context, db *gorm.DB, product *Product) error
	UpdateProduct(ctx context.Context, db *gorm.DB, product *Product) error
	DeleteProduct(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindProductByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindProductBySlug(ctx context.Context, db *gorm.DB, slug string) (*Product, error)
	FindProductBySourceOrderLine(ctx context.Context, db *gorm.DB, lineID snowflake.ID) (*Product, error)
	ListProducts(ctx context.Context, db *gorm.DB, filter ProductFilter) ([]Product, error)
	CountInstanceProductsByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (int64, error)

	CreateVariant(ctx context.Context, db *gorm.DB, variant *Variant) error
	UpdateVariant(ctx context.Context, db *gorm.DB, variant *Variant) error
	FindVariantByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Variant, error)
	FindVariantBySKU(ctx context.Context, db *gorm.DB, sku string) (*Variant, error)
	ListVariantsByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]Variant, error)

	CreateCategory(ctx context.Context, db *gorm.DB, category *Category) error
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)

	AddCompatibleAccessory(ctx context.Context, db *gorm.DB, link *CompatibleAccessory) error
	ListCompatibleAccessories(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]Product, error)
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Kind   ProductKind
	OrgID  *snowflake.ID
	Active *bool
}
