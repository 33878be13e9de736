package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/servewell/storefront/internal/order/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() domain.Repository { return &repository{} }

func (r *repository) InsertOrder(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repository) UpdateOrder(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repository) FindOrderByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrdersByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Order, error) {
	var orders []domain.Order
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repository) InsertLine(ctx context.Context, db *gorm.DB, line *domain.Line) error {
	return db.WithContext(ctx).Create(line).Error
}

func (r *repository) FindLineByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Line, error) {
	var line domain.Line
	err := db.WithContext(ctx).Where("id = ?", id).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) ListLines(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]domain.Line, error) {
	var lines []domain.Line
	err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}
