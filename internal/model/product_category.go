package model

import (
	"github.com/google/uuid"
)

// ProductCategory links a product to one category it is listed under.
type ProductCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_product_category"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_product_category"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}
