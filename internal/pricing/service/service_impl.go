package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	"github.com/servewell/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        pricingdomain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        pricingdomain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricing.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) Calculate(ctx context.Context, productID string, size string, quantity int) (*pricingdomain.Quote, error) {
	size = strings.TrimSpace(size)
	if size == "" || quantity == 0 {
		return nil, pricingdomain.ErrMissingParameters
	}
	if quantity < pricingdomain.MinimumOrderQuantity {
		return nil, pricingdomain.ErrBelowMinimumOrder
	}

	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, pricingdomain.ErrNoPricingFound
	}

	tier, err := s.repo.FindFloorTier(ctx, s.db, id, size, quantity)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, pricingdomain.ErrNoPricingFound
	}

	return &pricingdomain.Quote{
		UnitPrice:    tier.UnitPrice,
		TotalPrice:   tier.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Quantity:     quantity,
		CaseQuantity: tier.CaseQuantity,
		CasesNeeded:  ceilDiv(quantity, tier.CaseQuantity),
	}, nil
}

func (s *Service) AvailableSizes(ctx context.Context, productID string) ([]string, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, pricingdomain.ErrInvalidID
	}
	return s.repo.DistinctSizes(ctx, s.db, id)
}

func (s *Service) AvailableQuantities(ctx context.Context, productID string, size string) ([]int, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, pricingdomain.ErrInvalidID
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, pricingdomain.ErrInvalidSize
	}
	return s.repo.ThresholdsBySize(ctx, s.db, id, size)
}

func (s *Service) CreateTier(ctx context.Context, req pricingdomain.CreateTierRequest) (*pricingdomain.TierResponse, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, pricingdomain.ErrInvalidProduct
	}
	product, err := s.catalogRepo.FindProductByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsTemplate() {
		return nil, pricingdomain.ErrInvalidProduct
	}

	size := strings.TrimSpace(req.Size)
	if size == "" {
		return nil, pricingdomain.ErrInvalidSize
	}
	if req.QuantityThreshold <= 0 {
		return nil, pricingdomain.ErrInvalidThreshold
	}
	unitPrice, err := decimal.NewFromString(strings.TrimSpace(req.UnitPrice))
	if err != nil || !unitPrice.IsPositive() {
		return nil, pricingdomain.ErrInvalidUnitPrice
	}
	if req.CaseQuantity <= 0 {
		return nil, pricingdomain.ErrInvalidCaseQuantity
	}

	tier := &pricingdomain.Tier{
		ID:                s.genID.Generate(),
		ProductID:         productID,
		Size:              size,
		QuantityThreshold: req.QuantityThreshold,
		UnitPrice:         unitPrice,
		CaseQuantity:      req.CaseQuantity,
	}
	if err := s.repo.Insert(ctx, s.db, tier); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, pricingdomain.ErrDuplicateTier
		}
		return nil, err
	}
	return toTierResponse(tier), nil
}

func (s *Service) ListTiers(ctx context.Context, productID string) ([]pricingdomain.TierResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, pricingdomain.ErrInvalidID
	}
	tiers, err := s.repo.ListByProduct(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	resp := make([]pricingdomain.TierResponse, 0, len(tiers))
	for i := range tiers {
		resp = append(resp, *toTierResponse(&tiers[i]))
	}
	return resp, nil
}

func (s *Service) DeleteTier(ctx context.Context, id string) error {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return pricingdomain.ErrInvalidID
	}
	tier, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if tier == nil {
		return pricingdomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, parsed)
}

func toTierResponse(t *pricingdomain.Tier) *pricingdomain.TierResponse {
	return &pricingdomain.TierResponse{
		ID:                t.ID.String(),
		ProductID:         t.ProductID.String(),
		Size:              t.Size,
		QuantityThreshold: t.QuantityThreshold,
		UnitPrice:         t.UnitPrice.String(),
		CaseQuantity:      t.CaseQuantity,
	}
}

func ceilDiv(quantity, per int) int {
	if per <= 0 {
		return 0
	}
	return (quantity + per - 1) / per
}
