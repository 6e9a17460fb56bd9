package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ExtractionStatusProcessing = "processing"
	ExtractionStatusCompleted  = "completed"
	ExtractionStatusFailed     = "failed"
)

type MenuExtraction struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RestaurantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	FileURL       string         `gorm:"not null" json:"file_url"`
	ContentType   string         `json:"content_type"`
	Status        string         `gorm:"type:varchar(16);not null;default:'processing';index" json:"status"` // "processing", "completed", "failed"
	ExtractedData datatypes.JSON `gorm:"type:jsonb" json:"extracted_data,omitempty"`
	ErrorMessage  *string        `gorm:"type:text" json:"error_message,omitempty"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID"`
	Timestamp
}

func (MenuExtraction) TableName() string {
	return "menu_extractions"
}
