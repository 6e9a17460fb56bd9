package entities

import (
	"github.com/google/uuid"
)

type MenuItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"` // null means uncategorized
	Name         string     `gorm:"not null" json:"name"`
	Description  string     `json:"description,omitempty"`
	Price        float64    `gorm:"type:numeric(12,2);not null;default:0;check:price >= 0" json:"price"`
	Currency     string     `gorm:"type:varchar(3);not null" json:"currency"`
	IsSpecial    bool       `gorm:"not null;default:false" json:"is_special"`
	IsAvailable  bool       `gorm:"not null" json:"is_available"`
	DisplayOrder int        `gorm:"not null;default:0" json:"display_order"`

	Restaurant *Restaurant   `gorm:"foreignKey:RestaurantID"`
	Category   *MenuCategory `gorm:"foreignKey:CategoryID"`
	Timestamp
}
