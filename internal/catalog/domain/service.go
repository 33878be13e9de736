package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)

	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	ListProducts(ctx context.Context, req ListProductsRequest) ([]ProductResponse, error)

	CreateVariant(ctx context.Context, req CreateVariantRequest) (*VariantResponse, error)
	ListVariants(ctx context.Context, productID string) ([]VariantResponse, error)

	AddCompatibleAccessory(ctx context.Context, productID, accessoryID string) error
	ListCompatibleAccessories(ctx context.Context, productID string) ([]ProductResponse, error)
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	CategoryID  string         `json:"category_id"`
	Kind        string         `json:"kind"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Active      *bool          `json:"active"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type ListProductsRequest struct {
	Kind           string
	OrganizationID string
	Active         *bool
}

type ProductResponse struct {
	ID                string         `json:"id"`
	OrganizationID    *string        `json:"organization_id,omitempty"`
	CategoryID        *string        `json:"category_id,omitempty"`
	ParentProductID   *string        `json:"parent_product_id,omitempty"`
	Kind              string         `json:"kind"`
	Name              string         `json:"name"`
	Slug              string         `json:"slug"`
	Description       *string        `json:"description,omitempty"`
	Active            bool           `json:"active"`
	ConfigurationData map[string]any `json:"configuration_data,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type CreateVariantRequest struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Price         string  `json:"price"`
	PackSize      *int    `json:"pack_size"`
	StockQuantity int     `json:"stock_quantity"`
	Active        *bool   `json:"active"`
}

type VariantResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Price         string    `json:"price"`
	PackSize      *int      `json:"pack_size,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidKind     = errors.New("invalid_kind")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidSKU      = errors.New("invalid_sku")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidStock    = errors.New("invalid_stock")
	ErrInvalidPackSize = errors.New("invalid_pack_size")
	ErrInvalidID       = errors.New("invalid_id")
	ErrDuplicateSKU    = errors.New("duplicate_sku")
	ErrDuplicateSlug   = errors.New("duplicate_slug")
	ErrNotFound        = errors.New("not_found")
)
