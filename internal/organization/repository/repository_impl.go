package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	organizationdomain "github.com/servewell/storefront/internal/organization/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() organizationdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, org *organizationdomain.Organization) error {
	return db.WithContext(ctx).Create(org).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*organizationdomain.Organization, error) {
	var org organizationdomain.Organization
	err := db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]organizationdomain.Organization, error) {
	var orgs []organizationdomain.Organization
	if err := db.WithContext(ctx).Order("created_at ASC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&organizationdomain.Organization{}).Error
}
