package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cart *Cart) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Cart, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Cart, error)
	FindByAnonToken(ctx context.Context, db *gorm.DB, token string) (*Cart, error)

	InsertLine(ctx context.Context, db *gorm.DB, line *Line) error
	UpdateLine(ctx context.Context, db *gorm.DB, line *Line) error
	DeleteLine(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteLinesByCart(ctx context.Context, db *gorm.DB, cartID snowflake.ID) error
	FindLineByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Line, error)
	FindLineByVariant(ctx context.Context, db *gorm.DB, cartID, variantID snowflake.ID) (*Line, error)
	ListLines(ctx context.Context, db *gorm.DB, cartID snowflake.ID) ([]Line, error)
}
