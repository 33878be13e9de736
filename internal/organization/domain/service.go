package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	// Delete removes an organization. It fails with ErrHasInstanceProducts
	// while any reorderable instance product still belongs to it.
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name string `json:"name"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrHasInstanceProducts = errors.New("organization_has_instance_products")
)
