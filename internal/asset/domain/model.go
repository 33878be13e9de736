package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DesignAsset holds the uploaded artwork for a branded order line. The row is
// shared by reference: order lines and instance products point at the same
// underlying bytes rather than duplicating them.
type DesignAsset struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Filename    string       `json:"filename" gorm:"type:text;not null"`
	ContentType string       `json:"content_type" gorm:"type:text;not null"`
	ByteSize    int64        `json:"byte_size" gorm:"not null"`
	Checksum    string       `json:"checksum" gorm:"type:text;not null"`
	Data        []byte       `json:"-" gorm:"type:bytea"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DesignAsset) TableName() string { return "design_assets" }
