package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tier *Tier) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Tier, error)
	// FindFloorTier returns the tier with the largest threshold not exceeding
	// quantity for (product, size), or nil when no tier covers the quantity.
	FindFloorTier(ctx context.Context, db *gorm.DB, productID snowflake.ID, size string, quantity int) (*Tier, error)
	ListByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]Tier, error)
	DistinctSizes(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]string, error)
	ThresholdsBySize(ctx context.Context, db *gorm.DB, productID snowflake.ID, size string) ([]int, error)
}
