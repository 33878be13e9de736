package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// MinimumOrderQuantity is the smallest branded-product order the print line
// accepts, in physical units.
const MinimumOrderQuantity = 1000

type Service interface {
	// Calculate resolves the floor tier for (product, size, quantity) and
	// returns the priced quote. Pure read, no side effects.
	Calculate(ctx context.Context, productID string, size string, quantity int) (*Quote, error)
	// AvailableSizes returns the sorted distinct sizes with any tier.
	AvailableSizes(ctx context.Context, productID string) ([]string, error)
	// AvailableQuantities returns the sorted distinct thresholds for a size.
	AvailableQuantities(ctx context.Context, productID string, size string) ([]int, error)

	CreateTier(ctx context.Context, req CreateTierRequest) (*TierResponse, error)
	ListTiers(ctx context.Context, productID string) ([]TierResponse, error)
	DeleteTier(ctx context.Context, id string) error
}

// Quote is the result of a successful tier resolution.
type Quote struct {
	UnitPrice    decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Quantity     int             `json:"quantity"`
	CaseQuantity int             `json:"case_quantity"`
	CasesNeeded  int             `json:"cases_needed"`
}

type CreateTierRequest struct {
	ProductID         string `json:"product_id"`
	Size              string `json:"size"`
	QuantityThreshold int    `json:"quantity_threshold"`
	UnitPrice         string `json:"unit_price"`
	CaseQuantity      int    `json:"case_quantity"`
}

type TierResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	Size              string `json:"size"`
	QuantityThreshold int    `json:"quantity_threshold"`
	UnitPrice         string `json:"unit_price"`
	CaseQuantity      int    `json:"case_quantity"`
}

var (
	ErrMissingParameters = errors.New("missing_parameters")
	ErrBelowMinimumOrder = errors.New("below_minimum_order")
	ErrNoPricingFound    = errors.New("no_pricing_found")

	ErrInvalidProduct      = errors.New("invalid_product")
	ErrInvalidSize         = errors.New("invalid_size")
	ErrInvalidThreshold    = errors.New("invalid_quantity_threshold")
	ErrInvalidUnitPrice    = errors.New("invalid_unit_price")
	ErrInvalidCaseQuantity = errors.New("invalid_case_quantity")
	ErrInvalidID           = errors.New("invalid_id")
	ErrDuplicateTier       = errors.New("duplicate_tier")
	ErrNotFound            = errors.New("not_found")
)
