package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"uniqueIndex" json:"username"`
	Password string    `json:"-"`

	GardenItems []*GardenItem `gorm:"foreignKey:UserID" json:"garden_items,omitempty"`
	Timestamp
}
