package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BrandedStatus tracks the branded-fulfilment lifecycle of an order. Orders
// with no configured lines never enter the lifecycle and keep a null status.
type BrandedStatus string

const (
	// BrandedStatusDesignPending is set at order creation when any line
	// carries a branded configuration.
	BrandedStatusDesignPending BrandedStatus = "design_pending"
	// BrandedStatusInstanceCreated is set once a configured line has been
	// converted into a reorderable instance product.
	BrandedStatusInstanceCreated BrandedStatus = "instance_created"
)

const StatusPending = "pending"

var ErrInvalidTransition = errors.New("invalid_branded_status_transition")

type Order struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	UserID        snowflake.ID    `json:"user_id" gorm:"column:user_id;not null;index"`
	OrgID         *snowflake.ID   `json:"organization_id,omitempty" gorm:"column:org_id;index"`
	Status        string          `json:"status" gorm:"type:text;not null"`
	BrandedStatus *BrandedStatus  `json:"branded_status,omitempty" gorm:"column:branded_status;type:text"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,4);not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }

// MarkDesignPending enters the branded lifecycle. Valid only from the null
// state, once, at order creation.
func (o *Order) MarkDesignPending() error {
	if o.BrandedStatus != nil {
		return ErrInvalidTransition
	}
	status := BrandedStatusDesignPending
	o.BrandedStatus = &status
	return nil
}

// MarkInstanceCreated records a successful order-line conversion. Valid only
// from design_pending; the lifecycle has no reverse transitions.
func (o *Order) MarkInstanceCreated() error {
	if o.BrandedStatus == nil || *o.BrandedStatus != BrandedStatusDesignPending {
		return ErrInvalidTransition
	}
	status := BrandedStatusInstanceCreated
	o.BrandedStatus = &status
	return nil
}

// Line is one frozen row of an order, copied by value from a cart line at
// checkout. The design asset is shared by reference, not duplicated.
type Line struct {
	ID            snowflake.ID      `json:"id" gorm:"primaryKey"`
	OrderID       snowflake.ID      `json:"order_id" gorm:"column:order_id;not null;index"`
	ProductID     snowflake.ID      `json:"product_id" gorm:"column:product_id;not null"`
	VariantID     *snowflake.ID     `json:"variant_id,omitempty" gorm:"column:variant_id"`
	Quantity      int               `json:"quantity" gorm:"not null"`
	UnitPrice     decimal.Decimal   `json:"unit_price" gorm:"type:numeric(12,4);not null"`
	Configuration datatypes.JSONMap `json:"configuration,omitempty" gorm:"type:jsonb"`
	DesignAssetID *snowflake.ID     `json:"design_asset_id,omitempty" gorm:"column:design_asset_id"`
	LineTotal     decimal.Decimal   `json:"line_total" gorm:"type:numeric(12,4);not null"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Line) TableName() string { return "order_lines" }

// Configured reports whether the line carries a branded configuration.
func (l Line) Configured() bool { return len(l.Configuration) > 0 }

// AnyConfigured reports whether any line carries a branded configuration.
func AnyConfigured(lines []Line) bool {
	for i := range lines {
		if lines[i].Configured() {
			return true
		}
	}
	return false
}
