package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product belongs to at most one brand and any number of categories
// (via ProductCategory join rows).
type Product struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"index;not null"`
	NameAr  *string
	SKU     string          `gorm:"uniqueIndex;not null"`
	Price   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Image   *string
	BrandID *uuid.UUID `gorm:"type:uuid;index"`
	Active  bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Brand      *Brand            `gorm:"foreignKey:BrandID"`
	Categories []ProductCategory `gorm:"foreignKey:ProductID"`
	Variants   []ProductVariant  `gorm:"foreignKey:ProductID"`
}

// CategoryIDs flattens the join rows into plain category identifiers.
func (p Product) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, pc := range p.Categories {
		ids = append(ids, pc.CategoryID)
	}
	return ids
}

// InCategory reports whether the product is a member of the given category.
func (p Product) InCategory(categoryID uuid.UUID) bool {
	for _, pc := range p.Categories {
		if pc.CategoryID == categoryID {
			return true
		}
	}
	return false
}
