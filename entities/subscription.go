package entities

import (
	"github.com/google/uuid"
)

type Subscription struct {
	UserID uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	Tier   string    `gorm:"type:varchar(16);not null;default:'free'" json:"tier"` // "free", "premium", "agency"
	Status string    `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	Timestamp
}

type SubscriptionTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID     string    `gorm:"uniqueIndex;not null" json:"order_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Tier        string    `gorm:"type:varchar(16);not null" json:"tier"`
	GrossAmount int64     `json:"gross_amount"`
	Status      string    `gorm:"type:varchar(16);not null;default:'pending'" json:"status"` // "pending", "paid", "failed"
	SnapToken   string    `json:"snap_token,omitempty"`
	RedirectURL string    `json:"redirect_url,omitempty"`
	Timestamp
}
