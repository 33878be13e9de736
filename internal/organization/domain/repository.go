package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, org *Organization) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Organization, error)
	List(ctx context.Context, db *gorm.DB) ([]Organization, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
