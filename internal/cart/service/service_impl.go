package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	"github.com/servewell/storefront/internal/shopctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        cartdomain.Repository
	CatalogRepo catalogdomain.Repository
	AssetRepo   assetdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        cartdomain.Repository
	catalogRepo catalogdomain.Repository
	assetRepo   assetdomain.Repository
}

func New(p Params) cartdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("cart.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
		assetRepo:   p.AssetRepo,
	}
}

func (s *Service) EnsureCart(ctx context.Context) (*cartdomain.CartResponse, error) {
	cart, err := s.ensureCart(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, cart)
}

func (s *Service) Get(ctx context.Context) (*cartdomain.CartResponse, error) {
	cart, err := s.currentCart(ctx)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, cartdomain.ErrNotFound
	}
	return s.toResponse(ctx, cart)
}

func (s *Service) AddStandardLine(ctx context.Context, req cartdomain.AddStandardLineRequest) (*cartdomain.CartResponse, error) {
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, cartdomain.ErrInvalidSKU
	}

	variant, err := s.catalogRepo.FindVariantBySKU(ctx, s.db, sku)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, cartdomain.ErrInvalidSKU
	}
	if !variant.Active || !variant.Price.IsPositive() {
		return nil, cartdomain.ErrVariantInactive
	}
	if variant.StockQuantity <= 0 {
		return nil, cartdomain.ErrOutOfStock
	}

	cart, err := s.ensureCart(ctx)
	if err != nil {
		return nil, err
	}

	packSize := 0
	if variant.PackSize != nil {
		packSize = *variant.PackSize
	}

	existing, err := s.repo.FindLineByVariant(ctx, s.db, cart.ID, variant.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		newQty := existing.Quantity + req.Quantity
		if newQty <= 0 {
			if err := s.repo.DeleteLine(ctx, s.db, existing.ID); err != nil {
				return nil, err
			}
			return s.toResponse(ctx, cart)
		}
		existing.Quantity = newQty
		existing.LineTotal = cartdomain.ComputeLineTotal(existing.UnitPrice, newQty, false, packSize)
		existing.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateLine(ctx, s.db, existing); err != nil {
			return nil, err
		}
		return s.toResponse(ctx, cart)
	}

	if req.Quantity <= 0 {
		return nil, cartdomain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	line := &cartdomain.Line{
		ID:        s.genID.Generate(),
		CartID:    cart.ID,
		ProductID: variant.ProductID,
		VariantID: &variant.ID,
		Quantity:  req.Quantity,
		UnitPrice: variant.Price,
		LineTotal: cartdomain.ComputeLineTotal(variant.Price, req.Quantity, false, packSize),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertLine(ctx, s.db, line); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, cart)
}

func (s *Service) AddConfiguredLine(ctx context.Context, req cartdomain.AddConfiguredLineRequest) (*cartdomain.CartResponse, error) {
	if len(req.Configuration) == 0 {
		return nil, cartdomain.ErrMissingConfiguration
	}
	if size, _ := req.Configuration["size"].(string); strings.TrimSpace(size) == "" {
		return nil, cartdomain.ErrMissingConfiguration
	}
	if req.Quantity <= 0 {
		return nil, cartdomain.ErrInvalidQuantity
	}

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(req.UnitPrice))
	if err != nil || !unitPrice.IsPositive() {
		return nil, cartdomain.ErrInvalidUnitPrice
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, cartdomain.ErrInvalidProduct
	}
	product, err := s.catalogRepo.FindProductByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsTemplate() {
		return nil, cartdomain.ErrInvalidProduct
	}

	assetID, err := snowflake.ParseString(strings.TrimSpace(req.DesignAssetID))
	if err != nil {
		return nil, cartdomain.ErrMissingDesign
	}
	design, err := s.assetRepo.FindByID(ctx, s.db, assetID)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, cartdomain.ErrMissingDesign
	}

	cart, err := s.ensureCart(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	line := &cartdomain.Line{
		ID:            s.genID.Generate(),
		CartID:        cart.ID,
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		UnitPrice:     unitPrice,
		Configuration: datatypes.JSONMap(req.Configuration),
		DesignAssetID: &design.ID,
		LineTotal:     cartdomain.ComputeLineTotal(unitPrice, req.Quantity, true, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.InsertLine(ctx, s.db, line); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, cart)
}

func (s *Service) UpdateLineQuantity(ctx context.Context, lineID string, quantity int) (*cartdomain.CartResponse, error) {
	cart, line, err := s.ownedLine(ctx, lineID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.repo.DeleteLine(ctx, s.db, line.ID); err != nil {
			return nil, err
		}
		return s.toResponse(ctx, cart)
	}

	packSize := 0
	if !line.Configured() && line.VariantID != nil {
		variant, err := s.catalogRepo.FindVariantByID(ctx, s.db, *line.VariantID)
		if err != nil {
			return nil, err
		}
		if variant != nil && variant.PackSize != nil {
			packSize = *variant.PackSize
		}
	}

	line.Quantity = quantity
	line.LineTotal = cartdomain.ComputeLineTotal(line.UnitPrice, quantity, line.Configured(), packSize)
	line.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateLine(ctx, s.db, line); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, cart)
}

func (s *Service) RemoveLine(ctx context.Context, lineID string) (*cartdomain.CartResponse, error) {
	cart, line, err := s.ownedLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteLine(ctx, s.db, line.ID); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, cart)
}

func (s *Service) ensureCart(ctx context.Context) (*cartdomain.Cart, error) {
	cart, err := s.currentCart(ctx)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now().UTC()
	cart = &cartdomain.Cart{
		ID:        s.genID.Generate(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if userID, ok := shopctx.UserIDFromContext(ctx); ok {
		cart.UserID = &userID
	} else if token, ok := shopctx.CartTokenFromContext(ctx); ok {
		cart.AnonToken = &token
	} else {
		token := uuid.NewString()
		cart.AnonToken = &token
	}
	if err := s.repo.Insert(ctx, s.db, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) currentCart(ctx context.Context) (*cartdomain.Cart, error) {
	if userID, ok := shopctx.UserIDFromContext(ctx); ok {
		return s.repo.FindByUser(ctx, s.db, userID)
	}
	if token, ok := shopctx.CartTokenFromContext(ctx); ok {
		return s.repo.FindByAnonToken(ctx, s.db, token)
	}
	return nil, nil
}

func (s *Service) ownedLine(ctx context.Context, lineID string) (*cartdomain.Cart, *cartdomain.Line, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(lineID))
	if err != nil {
		return nil, nil, cartdomain.ErrInvalidID
	}
	cart, err := s.currentCart(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil {
		return nil, nil, cartdomain.ErrNotFound
	}
	line, err := s.repo.FindLineByID(ctx, s.db, parsed)
	if err != nil {
		return nil, nil, err
	}
	if line == nil || line.CartID != cart.ID {
		return nil, nil, cartdomain.ErrLineNotFound
	}
	return cart, line, nil
}

func (s *Service) toResponse(ctx context.Context, cart *cartdomain.Cart) (*cartdomain.CartResponse, error) {
	lines, err := s.repo.ListLines(ctx, s.db, cart.ID)
	if err != nil {
		return nil, err
	}

	resp := &cartdomain.CartResponse{
		ID:        cart.ID.String(),
		AnonToken: cart.AnonToken,
		Lines:     make([]cartdomain.LineResponse, 0, len(lines)),
	}
	subtotal := decimal.Zero
	for i := range lines {
		line := &lines[i]
		subtotal = subtotal.Add(line.LineTotal)
		lr := cartdomain.LineResponse{
			ID:        line.ID.String(),
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.String(),
			LineTotal: line.LineTotal.String(),
		}
		if line.VariantID != nil {
			v := line.VariantID.String()
			lr.VariantID = &v
		}
		if line.DesignAssetID != nil {
			v := line.DesignAssetID.String()
			lr.DesignAssetID = &v
		}
		if line.Configuration != nil {
			lr.Configuration = map[string]any(line.Configuration)
		}
		resp.Lines = append(resp.Lines, lr)
	}
	resp.Subtotal = subtotal.String()
	return resp, nil
}
