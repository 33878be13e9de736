package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() cartdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cart *cartdomain.Cart) error {
	return db.WithContext(ctx).Create(cart).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*cartdomain.Cart, error) {
	var cart cartdomain.Cart
	err := db.WithContext(ctx).Where("id = ?", id).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*cartdomain.Cart, error) {
	var cart cartdomain.Cart
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *repo) FindByAnonToken(ctx context.Context, db *gorm.DB, token string) (*cartdomain.Cart, error) {
	var cart cartdomain.Cart
	err := db.WithContext(ctx).Where("anon_token = ?", token).Order("created_at DESC").First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *repo) InsertLine(ctx context.Context, db *gorm.DB, line *cartdomain.Line) error {
	return db.WithContext(ctx).Create(line).Error
}

func (r *repo) UpdateLine(ctx context.Context, db *gorm.DB, line *cartdomain.Line) error {
	return db.WithContext(ctx).Save(line).Error
}

func (r *repo) DeleteLine(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&cartdomain.Line{}).Error
}

func (r *repo) DeleteLinesByCart(ctx context.Context, db *gorm.DB, cartID snowflake.ID) error {
	return db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&cartdomain.Line{}).Error
}

func (r *repo) FindLineByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*cartdomain.Line, error) {
	var line cartdomain.Line
	err := db.WithContext(ctx).Where("id = ?", id).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *repo) FindLineByVariant(ctx context.Context, db *gorm.DB, cartID, variantID snowflake.ID) (*cartdomain.Line, error) {
	var line cartdomain.Line
	err := db.WithContext(ctx).Where("cart_id = ? AND variant_id = ?", cartID, variantID).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *repo) ListLines(ctx context.Context, db *gorm.DB, cartID snowflake.ID) ([]cartdomain.Line, error) {
	var lines []cartdomain.Line
	err := db.WithContext(ctx).Where("cart_id = ?", cartID).Order("created_at ASC").Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
