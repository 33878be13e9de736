package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	catalogdomain "github.com/servewell/storefront/internal/catalog/domain"
	organizationdomain "github.com/servewell/storefront/internal/organization/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        organizationdomain.Repository
	catalogRepo catalogdomain.Repository
}

func NewService(db *gorm.DB, log *zap.Logger, genID *snowflake.Node, repo organizationdomain.Repository, catalogRepo catalogdomain.Repository) organizationdomain.Service {
	return &service{
		db:          db,
		log:         log.Named("organization.service"),
		genID:       genID,
		repo:        repo,
		catalogRepo: catalogRepo,
	}
}

func (s *service) Create(ctx context.Context, req organizationdomain.CreateRequest) (*organizationdomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, organizationdomain.ErrInvalidName
	}

	now := time.Now().UTC()
	org := &organizationdomain.Organization{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, org); err != nil {
		return nil, err
	}
	return toResponse(org), nil
}

func (s *service) Get(ctx context.Context, id string) (*organizationdomain.Response, error) {
	org, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(org), nil
}

func (s *service) List(ctx context.Context) ([]organizationdomain.Response, error) {
	orgs, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	resp := make([]organizationdomain.Response, 0, len(orgs))
	for i := range orgs {
		resp = append(resp, *toResponse(&orgs[i]))
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	org, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.catalogRepo.CountInstanceProductsByOrg(ctx, s.db, org.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return organizationdomain.ErrHasInstanceProducts
	}
	return s.repo.Delete(ctx, s.db, org.ID)
}

func (s *service) find(ctx context.Context, id string) (*organizationdomain.Organization, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, organizationdomain.ErrInvalidID
	}
	org, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, organizationdomain.ErrNotFound
	}
	return org, nil
}

func toResponse(o *organizationdomain.Organization) *organizationdomain.Response {
	return &organizationdomain.Response{
		ID:        o.ID.String(),
		Name:      o.Name,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
