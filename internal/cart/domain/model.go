package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Cart struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey"`
	UserID    *snowflake.ID `json:"user_id,omitempty" gorm:"column:user_id;index"`
	AnonToken *string       `json:"anon_token,omitempty" gorm:"column:anon_token;index"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Cart) TableName() string { return "carts" }

// Line is one row of a cart. A line is either standard (variant-backed, pack
// priced) or configured (template-backed with a design and a tier-resolved
// unit price); the configuration payload decides which.
type Line struct {
	ID            snowflake.ID      `json:"id" gorm:"primaryKey"`
	CartID        snowflake.ID      `json:"cart_id" gorm:"column:cart_id;not null;index"`
	ProductID     snowflake.ID      `json:"product_id" gorm:"column:product_id;not null"`
	VariantID     *snowflake.ID     `json:"variant_id,omitempty" gorm:"column:variant_id"`
	Quantity      int               `json:"quantity" gorm:"not null"`
	UnitPrice     decimal.Decimal   `json:"unit_price" gorm:"type:numeric(12,4);not null"`
	Configuration datatypes.JSONMap `json:"configuration,omitempty" gorm:"type:jsonb"`
	DesignAssetID *snowflake.ID     `json:"design_asset_id,omitempty" gorm:"column:design_asset_id"`
	LineTotal     decimal.Decimal   `json:"line_total" gorm:"type:numeric(12,4);not null"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Line) TableName() string { return "cart_lines" }

// Configured reports whether the line carries a branded configuration.
func (l Line) Configured() bool { return len(l.Configuration) > 0 }

// ComputeLineTotal prices one line. Configured lines are priced per physical
// unit. Standard lines with a pack size are priced per pack while quantity
// stays in units, so partial packs round up to whole packs purchased.
func ComputeLineTotal(unitPrice decimal.Decimal, quantity int, configured bool, packSize int) decimal.Decimal {
	if !configured && packSize > 0 {
		packs := (quantity + packSize - 1) / packSize
		return unitPrice.Mul(decimal.NewFromInt(int64(packs)))
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
