package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Tier is one step of a template product's volume-discount table. The tier
// covering a requested quantity Q is the row with the largest
// QuantityThreshold that does not exceed Q, for the matching size.
type Tier struct {
	ID                snowflake.ID    `json:"id" gorm:"primaryKey"`
	ProductID         snowflake.ID    `json:"product_id" gorm:"column:product_id;not null;uniqueIndex:ux_tiers_product_size_threshold,priority:1"`
	Size              string          `json:"size" gorm:"type:text;not null;uniqueIndex:ux_tiers_product_size_threshold,priority:2"`
	QuantityThreshold int             `json:"quantity_threshold" gorm:"not null;uniqueIndex:ux_tiers_product_size_threshold,priority:3"`
	UnitPrice         decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,4);not null"`
	CaseQuantity      int             `json:"case_quantity" gorm:"not null"`
	CreatedAt         time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Tier) TableName() string { return "pricing_tiers" }
