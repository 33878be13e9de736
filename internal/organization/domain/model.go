package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Organization struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Slug      string       `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_organizations_slug"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Organization) TableName() string { return "organizations" }
