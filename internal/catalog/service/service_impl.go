package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	"github.com/servewell/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateCategory(ctx context.Context, req catalogdomain.CreateCategoryRequest) (*catalogdomain.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	now := time.Now().UTC()
	category := &catalogdomain.Category{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateCategory(ctx, s.db, category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		return nil, err
	}
	return toCategoryResponse(category), nil
}

func (s *Service) ListCategories(ctx context.Context) ([]catalogdomain.CategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	resp := make([]catalogdomain.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, *toCategoryResponse(&categories[i]))
	}
	return resp, nil
}

func (s *Service) CreateProduct(ctx context.Context, req catalogdomain.CreateProductRequest) (*catalogdomain.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	kind := catalogdomain.ProductKind(strings.TrimSpace(req.Kind))
	switch kind {
	case catalogdomain.ProductKindStandard, catalogdomain.ProductKindCustomizable:
	case catalogdomain.ProductKindCustomizedInstance:
		// instance products are minted by the instance creator, never by admin CRUD
		return nil, catalogdomain.ErrInvalidKind
	default:
		return nil, catalogdomain.ErrInvalidKind
	}

	var categoryID *snowflake.ID
	if strings.TrimSpace(req.CategoryID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(req.CategoryID))
		if err != nil {
			return nil, catalogdomain.ErrInvalidCategory
		}
		category, err := s.repo.FindCategoryByID(ctx, s.db, parsed)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, catalogdomain.ErrInvalidCategory
		}
		categoryID = &parsed
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	product := &catalogdomain.Product{
		ID:          s.genID.Generate(),
		CategoryID:  categoryID,
		Kind:        kind,
		Name:        name,
		Slug:        slug.Make(name),
		Description: req.Description,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Metadata != nil {
		product.ConfigurationData = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.CreateProduct(ctx, s.db, product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		return nil, err
	}
	return ToProductResponse(product), nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req catalogdomain.UpdateProductRequest) (*catalogdomain.ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, catalogdomain.ErrInvalidName
		}
		product.Name = name
		product.Slug = slug.Make(name)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProduct(ctx, s.db, product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		return nil, err
	}
	return ToProductResponse(product), nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, s.db, product.ID)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalogdomain.ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

func (s *Service) ListProducts(ctx context.Context, req catalogdomain.ListProductsRequest) ([]catalogdomain.ProductResponse, error) {
	filter := catalogdomain.ProductFilter{
		Kind:   catalogdomain.ProductKind(strings.TrimSpace(req.Kind)),
		Active: req.Active,
	}
	if strings.TrimSpace(req.OrganizationID) != "" {
		orgID, err := snowflake.ParseString(strings.TrimSpace(req.OrganizationID))
		if err != nil {
			return nil, catalogdomain.ErrInvalidID
		}
		filter.OrgID = &orgID
	}

	products, err := s.repo.ListProducts(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]catalogdomain.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, *ToProductResponse(&products[i]))
	}
	return resp, nil
}

func (s *Service) CreateVariant(ctx context.Context, req catalogdomain.CreateVariantRequest) (*catalogdomain.VariantResponse, error) {
	product, err := s.findProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, catalogdomain.ErrInvalidSKU
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || price.IsNegative() || price.IsZero() {
		return nil, catalogdomain.ErrInvalidPrice
	}
	if req.StockQuantity < 0 {
		return nil, catalogdomain.ErrInvalidStock
	}
	if req.PackSize != nil && *req.PackSize <= 0 {
		return nil, catalogdomain.ErrInvalidPackSize
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	variant := &catalogdomain.Variant{
		ID:            s.genID.Generate(),
		ProductID:     product.ID,
		Name:          name,
		SKU:           sku,
		Price:         price,
		PackSize:      req.PackSize,
		StockQuantity: req.StockQuantity,
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateVariant(ctx, s.db, variant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSKU
		}
		return nil, err
	}
	return toVariantResponse(variant), nil
}

func (s *Service) ListVariants(ctx context.Context, productID string) ([]catalogdomain.VariantResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	variants, err := s.repo.ListVariantsByProduct(ctx, s.db, product.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]catalogdomain.VariantResponse, 0, len(variants))
	for i := range variants {
		resp = append(resp, *toVariantResponse(&variants[i]))
	}
	return resp, nil
}

func (s *Service) AddCompatibleAccessory(ctx context.Context, productID, accessoryID string) error {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsTemplate() {
		return catalogdomain.ErrInvalidKind
	}
	accessory, err := s.findProduct(ctx, accessoryID)
	if err != nil {
		return err
	}

	link := &catalogdomain.CompatibleAccessory{
		ID:                 s.genID.Generate(),
		ProductID:          product.ID,
		AccessoryProductID: accessory.ID,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.repo.AddCompatibleAccessory(ctx, s.db, link); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil
		}
		return err
	}
	return nil
}

func (s *Service) ListCompatibleAccessories(ctx context.Context, productID string) ([]catalogdomain.ProductResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	accessories, err := s.repo.ListCompatibleAccessories(ctx, s.db, product.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]catalogdomain.ProductResponse, 0, len(accessories))
	for i := range accessories {
		resp = append(resp, *ToProductResponse(&accessories[i]))
	}
	return resp, nil
}

func (s *Service) findProduct(ctx context.Context, id string) (*catalogdomain.Product, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}
	product, err := s.repo.FindProductByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return product, nil
}

// ToProductResponse converts a product entity into its API representation.
func ToProductResponse(p *catalogdomain.Product) *catalogdomain.ProductResponse {
	resp := &catalogdomain.ProductResponse{
		ID:          p.ID.String(),
		Kind:        string(p.Kind),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.OrgID != nil {
		v := p.OrgID.String()
		resp.OrganizationID = &v
	}
	if p.CategoryID != nil {
		v := p.CategoryID.String()
		resp.CategoryID = &v
	}
	if p.ParentProductID != nil {
		v := p.ParentProductID.String()
		resp.ParentProductID = &v
	}
	if p.ConfigurationData != nil {
		resp.ConfigurationData = map[string]any(p.ConfigurationData)
	}
	return resp
}

func toCategoryResponse(c *catalogdomain.Category) *catalogdomain.CategoryResponse {
	return &catalogdomain.CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
	}
}

func toVariantResponse(v *catalogdomain.Variant) *catalogdomain.VariantResponse {
	return &catalogdomain.VariantResponse{
		ID:            v.ID.String(),
		ProductID:     v.ProductID.String(),
		Name:          v.Name,
		SKU:           v.SKU,
		Price:         v.Price.String(),
		PackSize:      v.PackSize,
		StockQuantity: v.StockQuantity,
		Active:        v.Active,
		CreatedAt:     v.CreatedAt,
	}
}
