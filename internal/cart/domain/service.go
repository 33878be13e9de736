package domain

import (
	"context"
	"errors"
)

type Service interface {
	// EnsureCart loads the caller's active cart, creating one when absent.
	EnsureCart(ctx context.Context) (*CartResponse, error)
	Get(ctx context.Context) (*CartResponse, error)
	// AddStandardLine adds or accumulates a variant-backed line. Adding onto an
	// existing line increments its quantity; a non-positive resulting quantity
	// removes the line instead.
	AddStandardLine(ctx context.Context, req AddStandardLineRequest) (*CartResponse, error)
	// AddConfiguredLine adds a branded line carrying a configuration payload,
	// an uploaded design and the tier-resolved unit price.
	AddConfiguredLine(ctx context.Context, req AddConfiguredLineRequest) (*CartResponse, error)
	UpdateLineQuantity(ctx context.Context, lineID string, quantity int) (*CartResponse, error)
	RemoveLine(ctx context.Context, lineID string) (*CartResponse, error)
}

type AddStandardLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type AddConfiguredLineRequest struct {
	ProductID     string         `json:"product_id"`
	Quantity      int            `json:"quantity"`
	UnitPrice     string         `json:"unit_price"`
	Configuration map[string]any `json:"configuration"`
	DesignAssetID string         `json:"design_asset_id"`
}

type CartResponse struct {
	ID        string         `json:"id"`
	AnonToken *string        `json:"anon_token,omitempty"`
	Lines     []LineResponse `json:"lines"`
	Subtotal  string         `json:"subtotal"`
}

type LineResponse struct {
	ID            string         `json:"id"`
	ProductID     string         `json:"product_id"`
	VariantID     *string        `json:"variant_id,omitempty"`
	Quantity      int            `json:"quantity"`
	UnitPrice     string         `json:"unit_price"`
	Configuration map[string]any `json:"configuration,omitempty"`
	DesignAssetID *string        `json:"design_asset_id,omitempty"`
	LineTotal     string         `json:"line_total"`
}

var (
	ErrInvalidQuantity      = errors.New("invalid_quantity")
	ErrInvalidSKU           = errors.New("invalid_sku")
	ErrInvalidUnitPrice     = errors.New("invalid_unit_price")
	ErrInvalidProduct       = errors.New("invalid_product")
	ErrInvalidID            = errors.New("invalid_id")
	ErrMissingConfiguration = errors.New("missing_configuration")
	ErrMissingDesign        = errors.New("missing_design")
	ErrVariantInactive      = errors.New("variant_inactive")
	ErrOutOfStock           = errors.New("out_of_stock")
	ErrNotFound             = errors.New("not_found")
	ErrLineNotFound         = errors.New("line_not_found")
)
