package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*Response, error)
	Get(ctx context.Context, id string) (*DesignAsset, error)
}

type UploadRequest struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Response struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	ByteSize    int64     `json:"byte_size"`
	Checksum    string    `json:"checksum"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrEmptyFile       = errors.New("empty_file")
	ErrInvalidFilename = errors.New("invalid_filename")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
