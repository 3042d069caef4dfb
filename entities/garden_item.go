package entities

import (
	"time"

	"github.com/google/uuid"
)

type GardenItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"index" json:"user_id"`
	CustomName string    `json:"custom_name"`
	PlantID    int       `json:"plantId"`
	Location   string    `json:"location,omitempty"`
	Notes      string    `json:"notes,omitempty"`

	User        *User         `gorm:"foreignKey:UserID" json:"-"`
	PlantImages []*PlantImage `gorm:"foreignKey:GardenItemID" json:"plantImages"`
	Timestamp
}

type PlantImage struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	GardenItemID uuid.UUID `gorm:"index" json:"garden_item_id"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `gorm:"type:timestamp" json:"created_at"`

	GardenItem *GardenItem `gorm:"foreignKey:GardenItemID" json:"-"`
}
