package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertOrder(ctx context.Context, db *gorm.DB, order *Order) error
	UpdateOrder(ctx context.Context, db *gorm.DB, order *Order) error
	FindOrderByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	ListOrdersByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Order, error)

	InsertLine(ctx context.Context, db *gorm.DB, line *Line) error
	FindLineByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Line, error)
	ListLines(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]Line, error)
}
