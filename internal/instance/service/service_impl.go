package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	catalogservice "github.com/servewell/storefront/internal/catalog/service"
	"github.com/servewell/storefront/internal/instance/domain"
	orderdomain "github.com/servewell/storefront/internal/order/domain"
	orgdomain "github.com/servewell/storefront/internal/organization/domain"
	"github.com/servewell/storefront/pkg/db"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	OrderRepo   orderdomain.Repository
	CatalogRepo catalogdomain.Repository
	OrgRepo     orgdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	orderRepo   orderdomain.Repository
	catalogRepo catalogdomain.Repository
	orgRepo     orgdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("instance.service"),
		genID:       p.GenID,
		orderRepo:   p.OrderRepo,
		catalogRepo: p.CatalogRepo,
		orgRepo:     p.OrgRepo,
	}
}

func (s *Service) CreateInstanceProduct(ctx context.Context, req domain.CreateRequest) (*catalogdomain.ProductResponse, error) {
	lineID, err := snowflake.ParseString(strings.TrimSpace(req.OrderLineID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	line, err := s.orderRepo.FindLineByID(ctx, s.db, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrLineNotFound
	}
	if !line.Configured() {
		return nil, domain.ErrNotConfigured
	}

	// Reload the order rather than trusting anything cached by the caller;
	// the organization link may have changed since the line was loaded.
	order, err := s.orderRepo.FindOrderByID(ctx, s.db, line.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.OrgID == nil {
		return nil, domain.ErrNoOrganization
	}

	name := strings.TrimSpace(req.ProductName)
	sku := strings.TrimSpace(req.SKU)
	price, priceErr := decimal.NewFromString(strings.TrimSpace(req.ReorderPrice))

	var invalid []string
	if name == "" {
		invalid = append(invalid, "product_name must not be blank")
	}
	if sku == "" {
		invalid = append(invalid, "sku must not be blank")
	}
	if req.InitialStock <= 0 {
		invalid = append(invalid, "initial_stock must be a positive integer")
	}
	if priceErr != nil || !price.IsPositive() {
		invalid = append(invalid, "reorder_price must be a positive number")
	}
	if len(invalid) > 0 {
		return nil, &domain.InvalidParametersError{Fields: invalid}
	}

	// One instance product per source line. The unique index on
	// source_order_line_id backs this up against concurrent conversions.
	existing, err := s.catalogRepo.FindProductBySourceOrderLine(ctx, s.db, line.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyConverted
	}

	org, err := s.orgRepo.FindByID(ctx, s.db, *order.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNoOrganization
	}

	template, err := s.catalogRepo.FindProductByID(ctx, s.db, line.ProductID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, &domain.CreationFailedError{Message: "template product no longer exists"}
	}

	now := time.Now().UTC()
	description := fmt.Sprintf("Custom branded product created for %s.", org.Name)
	product := &catalogdomain.Product{
		ID:                s.genID.Generate(),
		OrgID:             order.OrgID,
		CategoryID:        template.CategoryID,
		ParentProductID:   &template.ID,
		SourceOrderLineID: &line.ID,
		Kind:              catalogdomain.ProductKindCustomizedInstance,
		Name:              name,
		Slug:              slug.Make(name),
		Description:       &description,
		Active:            true,
		ConfigurationData: line.Configuration,
		DesignAssetID:     line.DesignAssetID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	variant := &catalogdomain.Variant{
		ID:            s.genID.Generate(),
		ProductID:     product.ID,
		Name:          "Standard",
		SKU:           sku,
		Price:         price,
		StockQuantity: req.InitialStock,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.catalogRepo.CreateProduct(ctx, tx, product); err != nil {
			return err
		}
		if err := s.catalogRepo.CreateVariant(ctx, tx, variant); err != nil {
			return err
		}
		if err := order.MarkInstanceCreated(); err != nil {
			return err
		}
		return s.orderRepo.UpdateOrder(ctx, tx, order)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) && strings.Contains(err.Error(), "source_order_line") {
			return nil, domain.ErrAlreadyConverted
		}
		s.log.Warn("instance creation rolled back",
			zap.String("order_line_id", line.ID.String()),
			zap.Error(err),
		)
		return nil, &domain.CreationFailedError{Message: err.Error()}
	}

	s.log.Info("instance product created",
		zap.String("product_id", product.ID.String()),
		zap.String("order_line_id", line.ID.String()),
		zap.String("organization_id", org.ID.String()),
	)
	return catalogservice.ToProductResponse(product), nil
}
