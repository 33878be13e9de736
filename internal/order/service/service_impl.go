package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	cartdomain "github.com/servewell/storefront/internal/cart/domain"
	"github.com/servewell/storefront/internal/clock"
	"github.com/servewell/storefront/internal/order/domain"
	pricingdomain "github.com/servewell/storefront/internal/pricing/domain"
	"github.com/servewell/storefront/internal/shopctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	CartRepo cartdomain.Repository
	Pricing  pricingdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	cartRepo cartdomain.Repository
	pricing  pricingdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		cartRepo: p.CartRepo,
		pricing:  p.Pricing,
	}
}

func (s *Service) Checkout(ctx context.Context) (*domain.Response, error) {
	userID, ok := shopctx.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrNoUser
	}

	cart, err := s.cartRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrEmptyCart
	}
	cartLines, err := s.cartRepo.ListLines(ctx, s.db, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(cartLines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Configured lines were priced when they entered the cart. Re-resolve the
	// tier before freezing so an order never carries a price that no longer
	// matches the published tiers.
	for i := range cartLines {
		line := &cartLines[i]
		if !line.Configured() {
			continue
		}
		size, _ := line.Configuration["size"].(string)
		quote, err := s.pricing.Calculate(ctx, line.ProductID.String(), size, line.Quantity)
		if err != nil {
			return nil, domain.ErrStalePrice
		}
		if !quote.UnitPrice.Equal(line.UnitPrice) {
			return nil, domain.ErrStalePrice
		}
	}

	now := s.clock.Now()
	order := &domain.Order{
		ID:          s.genID.Generate(),
		UserID:      userID,
		Status:      domain.StatusPending,
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if orgID, ok := shopctx.OrgIDFromContext(ctx); ok {
		order.OrgID = &orgID
	}

	var frozen []domain.Line
	total := decimal.Zero
	for i := range cartLines {
		cl := &cartLines[i]
		frozen = append(frozen, domain.Line{
			ID:            s.genID.Generate(),
			OrderID:       order.ID,
			ProductID:     cl.ProductID,
			VariantID:     cl.VariantID,
			Quantity:      cl.Quantity,
			UnitPrice:     cl.UnitPrice,
			Configuration: cl.Configuration,
			DesignAssetID: cl.DesignAssetID,
			LineTotal:     cl.LineTotal,
			CreatedAt:     now,
		})
		total = total.Add(cl.LineTotal)
	}
	order.TotalAmount = total

	if domain.AnyConfigured(frozen) {
		if err := order.MarkDesignPending(); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertOrder(ctx, tx, order); err != nil {
			return err
		}
		for i := range frozen {
			if err := s.repo.InsertLine(ctx, tx, &frozen[i]); err != nil {
				return err
			}
		}
		return s.cartRepo.DeleteLinesByCart(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.Int("lines", len(frozen)),
		zap.String("total", order.TotalAmount.String()),
	)
	return toResponse(order, frozen), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	order, err := s.repo.FindOrderByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if userID, ok := shopctx.UserIDFromContext(ctx); ok && order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	lines, err := s.repo.ListLines(ctx, s.db, order.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(order, lines), nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	userID, ok := shopctx.UserIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrNoUser
	}
	orders, err := s.repo.ListOrdersByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(orders))
	for i := range orders {
		lines, err := s.repo.ListLines(ctx, s.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, *toResponse(&orders[i], lines))
	}
	return resp, nil
}

func toResponse(order *domain.Order, lines []domain.Line) *domain.Response {
	resp := &domain.Response{
		ID:          order.ID.String(),
		Status:      order.Status,
		TotalAmount: order.TotalAmount.String(),
		Lines:       make([]domain.LineResponse, 0, len(lines)),
		CreatedAt:   order.CreatedAt,
	}
	if order.OrgID != nil {
		v := order.OrgID.String()
		resp.OrganizationID = &v
	}
	if order.BrandedStatus != nil {
		v := string(*order.BrandedStatus)
		resp.BrandedStatus = &v
	}
	for i := range lines {
		line := &lines[i]
		lr := domain.LineResponse{
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
		if line.Configuration != nil {
			lr.Configuration = map[string]any(line.Configuration)
		}
		resp.Lines = append(resp.Lines, lr)
	}
	return resp
}
