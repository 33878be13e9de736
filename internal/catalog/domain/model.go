package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductKind distinguishes how a product is priced and stocked.
type ProductKind string

const (
	// ProductKindStandard is a stocked catalog product sold through variants.
	ProductKindStandard ProductKind = "standard"
	// ProductKindCustomizable is a template product priced through quantity tiers.
	ProductKindCustomizable ProductKind = "customizable"
	// ProductKindCustomizedInstance is an organization-owned reorder product
	// minted from a fulfilled branded order line.
	ProductKindCustomizedInstance ProductKind = "customized_instance"
)

type Product struct {
	ID                snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrgID             *snowflake.ID     `json:"organization_id,omitempty" gorm:"column:org_id;index"`
	CategoryID        *snowflake.ID     `json:"category_id,omitempty" gorm:"column:category_id;index"`
	ParentProductID   *snowflake.ID     `json:"parent_product_id,omitempty" gorm:"column:parent_product_id;index"`
	SourceOrderLineID *snowflake.ID     `json:"source_order_line_id,omitempty" gorm:"column:source_order_line_id;uniqueIndex:ux_products_source_order_line"`
	Kind              ProductKind       `json:"kind" gorm:"type:text;not null;index"`
	Name              string            `json:"name" gorm:"type:text;not null"`
	Slug              string            `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_products_slug"`
	Description       *string           `json:"description,omitempty" gorm:"type:text"`
	Active            bool              `json:"active" gorm:"not null;default:true"`
	ConfigurationData datatypes.JSONMap `json:"configuration_data,omitempty" gorm:"type:jsonb"`
	DesignAssetID     *snowflake.ID     `json:"design_asset_id,omitempty" gorm:"column:design_asset_id"`
	CreatedAt         time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

// IsTemplate reports whether the product is a customizable template.
func (p Product) IsTemplate() bool { return p.Kind == ProductKindCustomizable }

type Variant struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	ProductID     snowflake.ID    `json:"product_id" gorm:"column:product_id;not null;index"`
	Name          string          `json:"name" gorm:"type:text;not null"`
	SKU           string          `json:"sku" gorm:"column:sku;type:text;not null;uniqueIndex:ux_variants_sku"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(12,4);not null"`
	PackSize      *int            `json:"pack_size,omitempty" gorm:"column:pack_size"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0"`
	Active        bool            `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Variant) TableName() string { return "variants" }

type Category struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Slug      string       `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_categories_slug"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Category) TableName() string { return "categories" }

// CompatibleAccessory links a template product to an accessory that fits it,
// e.g. a lid matching a cup size.
type CompatibleAccessory struct {
	ID                 snowflake.ID `json:"id" gorm:"primaryKey"`
	ProductID          snowflake.ID `json:"product_id" gorm:"column:product_id;not null;uniqueIndex:ux_compatible_accessories,priority:1"`
	AccessoryProductID snowflake.ID `json:"accessory_product_id" gorm:"column:accessory_product_id;not null;uniqueIndex:ux_compatible_accessories,priority:2"`
	CreatedAt          time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CompatibleAccessory) TableName() string { return "compatible_accessories" }
