package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() assetdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, asset *assetdomain.DesignAsset) error {
	return db.WithContext(ctx).Create(asset).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*assetdomain.DesignAsset, error) {
	var asset assetdomain.DesignAsset
	err := db.WithContext(ctx).Where("id = ?", id).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}
