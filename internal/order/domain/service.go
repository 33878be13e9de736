package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Checkout freezes the caller's cart into an immutable order. Configured
	// lines have their tier price re-resolved before the order is committed.
	Checkout(ctx context.Context) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}

type Response struct {
	ID             string         `json:"id"`
	OrganizationID *string        `json:"organization_id,omitempty"`
	Status         string         `json:"status"`
	BrandedStatus  *string        `json:"branded_status,omitempty"`
	TotalAmount    string         `json:"total_amount"`
	Lines          []LineResponse `json:"lines"`
	CreatedAt      time.Time      `json:"created_at"`
}

type LineResponse struct {
	ID            string         `json:"id"`
	ProductID     string         `json:"product_id"`
	VariantID     *string        `json:"variant_id,omitempty"`
	Quantity      int            `json:"quantity"`
	UnitPrice     string         `json:"unit_price"`
	Configuration map[string]any `json:"configuration,omitempty"`
	LineTotal     string         `json:"line_total"`
}

var (
	ErrNoUser       = errors.New("user_required")
	ErrEmptyCart    = errors.New("cart_empty")
	ErrStalePrice   = errors.New("stale_configured_price")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
	ErrLineNotFound = errors.New("order_line_not_found")
)
