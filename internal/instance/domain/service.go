package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
)

// Service converts a fulfilled configured order line into an
// organization-owned reorder product.
type Service interface {
	CreateInstanceProduct(ctx context.Context, req CreateRequest) (*catalogdomain.ProductResponse, error)
}

type CreateRequest struct {
	OrderLineID  string `json:"order_line_id"`
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku"`
	InitialStock int    `json:"initial_stock"`
	ReorderPrice string `json:"reorder_price"`
}

var (
	ErrInvalidID        = errors.New("invalid_order_line_id")
	ErrLineNotFound     = errors.New("order_line_not_found")
	ErrNotConfigured    = errors.New("order_line_not_configured")
	ErrNoOrganization   = errors.New("order_has_no_organization")
	ErrAlreadyConverted = errors.New("order_line_already_converted")
)

// InvalidParametersError reports every invalid conversion parameter at once
// so the operator can fix the whole form in one pass.
type InvalidParametersError struct {
	Fields []string
}

func (e *InvalidParametersError) Error() string {
	return "invalid parameters: " + strings.Join(e.Fields, ", ")
}

// CreationFailedError wraps any failure inside the conversion transaction.
// The underlying message is kept for diagnostics but callers only branch on
// the error kind.
type CreationFailedError struct {
	Message string
}

func (e *CreationFailedError) Error() string {
	return fmt.Sprintf("instance creation failed: %s", e.Message)
}
