package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/enums"
)

// ProductMedia is one entry in a product's ordered media collection.
type ProductMedia struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID              `gorm:"column:product_id;type:uuid;not null;index"`
	ContentType     enums.MediaContentType `gorm:"column:content_type;type:media_content_type;not null"`
	PreviewImageURL string                 `gorm:"column:preview_image_url;not null"`
	SourceURL       string                 `gorm:"column:source_url;not null"`
	AltText         *string                `gorm:"column:alt_text"`
	Width           *int                   `gorm:"column:width"`
	Height          *int                   `gorm:"column:height"`
	Position        int                    `gorm:"column:position;not null;default:0"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the uncountable table name.
func (ProductMedia) TableName() string { return "product_media" }
