package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricingdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tier *pricingdomain.Tier) error {
	return db.WithContext(ctx).Create(tier).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&pricingdomain.Tier{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*pricingdomain.Tier, error) {
	var tier pricingdomain.Tier
	err := db.WithContext(ctx).Where("id = ?", id).First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

func (r *repo) FindFloorTier(ctx context.Context, db *gorm.DB, productID snowflake.ID, size string, quantity int) (*pricingdomain.Tier, error) {
	var tier pricingdomain.Tier
	err := db.WithContext(ctx).
		Where("product_id = ? AND size = ? AND quantity_threshold <= ?", productID, size, quantity).
		Order("quantity_threshold DESC").
		First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

func (r *repo) ListByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]pricingdomain.Tier, error) {
	var tiers []pricingdomain.Tier
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("size ASC, quantity_threshold ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repo) DistinctSizes(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]string, error) {
	var sizes []string
	err := db.WithContext(ctx).Model(&pricingdomain.Tier{}).
		Where("product_id = ?", productID).
		Distinct("size").
		Order("size ASC").
		Pluck("size", &sizes).Error
	if err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *repo) ThresholdsBySize(ctx context.Context, db *gorm.DB, productID snowflake.ID, size string) ([]int, error) {
	var thresholds []int
	err := db.WithContext(ctx).Model(&pricingdomain.Tier{}).
		Where("product_id = ? AND size = ?", productID, size).
		Order("quantity_threshold ASC").
		Pluck("quantity_threshold", &thresholds).Error
	if err != nil {
		return nil, err
	}
	return thresholds, nil
}
