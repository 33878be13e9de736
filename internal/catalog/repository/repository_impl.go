package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) CreateProduct(ctx context.Context, db *gorm.DB, product *catalogdomain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) UpdateProduct(ctx context.Context, db *gorm.DB, product *catalogdomain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) DeleteProduct(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&catalogdomain.Variant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ? OR accessory_product_id = ?", id, id).
			Delete(&catalogdomain.CompatibleAccessory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&catalogdomain.Product{}).Error
	})
}

func (r *repo) FindProductByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) FindProductBySlug(ctx context.Context, db *gorm.DB, slug string) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) FindProductBySourceOrderLine(ctx context.Context, db *gorm.DB, lineID snowflake.ID) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := db.WithContext(ctx).Where("source_order_line_id = ?", lineID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) ListProducts(ctx context.Context, db *gorm.DB, filter catalogdomain.ProductFilter) ([]catalogdomain.Product, error) {
	query := db.WithContext(ctx).Model(&catalogdomain.Product{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.OrgID != nil {
		query = query.Where("org_id = ?", *filter.OrgID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	var products []catalogdomain.Product
	if err := query.Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repo) CountInstanceProductsByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&catalogdomain.Product{}).
		Where("org_id = ? AND kind = ?", orgID, catalogdomain.ProductKindCustomizedInstance).
		Count(&count).Error
	return count, err
}

func (r *repo) CreateVariant(ctx context.Context, db *gorm.DB, variant *catalogdomain.Variant) error {
	return db.WithContext(ctx).Create(variant).Error
}

func (r *repo) UpdateVariant(ctx context.Context, db *gorm.DB, variant *catalogdomain.Variant) error {
	return db.WithContext(ctx).Save(variant).Error
}

func (r *repo) FindVariantByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Variant, error) {
	var variant catalogdomain.Variant
	err := db.WithContext(ctx).Where("id = ?", id).First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

func (r *repo) FindVariantBySKU(ctx context.Context, db *gorm.DB, sku string) (*catalogdomain.Variant, error) {
	var variant catalogdomain.Variant
	err := db.WithContext(ctx).Where("sku = ?", sku).First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

func (r *repo) ListVariantsByProduct(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]catalogdomain.Variant, error) {
	var variants []catalogdomain.Variant
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *repo) CreateCategory(ctx context.Context, db *gorm.DB, category *catalogdomain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Category, error) {
	var category catalogdomain.Category
	err := db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]catalogdomain.Category, error) {
	var categories []catalogdomain.Category
	if err := db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) AddCompatibleAccessory(ctx context.Context, db *gorm.DB, link *catalogdomain.CompatibleAccessory) error {
	return db.WithContext(ctx).Create(link).Error
}

func (r *repo) ListCompatibleAccessories(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]catalogdomain.Product, error) {
	var products []catalogdomain.Product
	err := db.WithContext(ctx).
		Joins("JOIN compatible_accessories ca ON ca.accessory_product_id = products.id").
		Where("ca.product_id = ?", productID).
		Order("products.name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
