package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the catalog forest. ParentID is self-referential;
// nil means top-level. The parent chain must stay acyclic — enforced at
// edit time by CategoryService, not by the database.
type Category struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"index;not null"`
	NameAr   *string
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Image    *string
	Active   bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Parent *Category `gorm:"foreignKey:ParentID"`
}

// DisplayName returns the localized name when present.
func (c Category) DisplayName(arabic bool) string {
	if arabic && c.NameAr != nil && *c.NameAr != "" {
		return *c.NameAr
	}
	return c.Name
}
