package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/servewell/storefront/internal/asset/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  assetdomain.Repository
}

func NewService(db *gorm.DB, log *zap.Logger, genID *snowflake.Node, repo assetdomain.Repository) assetdomain.Service {
	return &service{
		db:    db,
		log:   log.Named("asset.service"),
		genID: genID,
		repo:  repo,
	}
}

func (s *service) Upload(ctx context.Context, req assetdomain.UploadRequest) (*assetdomain.Response, error) {
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		return nil, assetdomain.ErrInvalidFilename
	}
	if len(req.Data) == 0 {
		return nil, assetdomain.ErrEmptyFile
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	sum := sha256.Sum256(req.Data)
	asset := &assetdomain.DesignAsset{
		ID:          s.genID.Generate(),
		Filename:    filename,
		ContentType: contentType,
		ByteSize:    int64(len(req.Data)),
		Checksum:    hex.EncodeToString(sum[:]),
		Data:        req.Data,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, asset); err != nil {
		return nil, err
	}

	return &assetdomain.Response{
		ID:          asset.ID.String(),
		Filename:    asset.Filename,
		ContentType: asset.ContentType,
		ByteSize:    asset.ByteSize,
		Checksum:    asset.Checksum,
		CreatedAt:   asset.CreatedAt,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*assetdomain.DesignAsset, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, assetdomain.ErrInvalidID
	}
	asset, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, assetdomain.ErrNotFound
	}
	return asset, nil
}
