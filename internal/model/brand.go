package model

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a product brand. NameAr carries the Arabic display name used by
// the bilingual dashboard; absent means "fall back to Name".
type Brand struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string    `gorm:"uniqueIndex;not null"`
	NameAr *string
	Code   *string `gorm:"index"`
	Logo   *string
	Active bool    `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
