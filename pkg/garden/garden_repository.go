package garden

import (
	"context"

	"Little-Gardener-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	GardenRepository interface {
		AddGardenItem(ctx context.Context, item *entities.GardenItem) error
		GetGardenItemsByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.GardenItem, error)
		GetGardenItemByName(ctx context.Context, userID uuid.UUID, customName string) (*entities.GardenItem, error)
		AddPlantImage(ctx context.Context, image *entities.PlantImage) error
	}

	gardenRepository struct {
		db *gorm.DB
	}
)

func NewGardenRepository(db *gorm.DB) GardenRepository {
	return &gardenRepository{db: db}
}

func (r *gardenRepository) AddGardenItem(ctx context.Context, item *entities.GardenItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gardenRepository) GetGardenItemsByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.GardenItem, error) {
	var items []*entities.GardenItem
	if err := r.db.WithContext(ctx).
		Preload("PlantImages").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gardenRepository) GetGardenItemByName(ctx context.Context, userID uuid.UUID, customName string) (*entities.GardenItem, error) {
	var item entities.GardenItem
	if err := r.db.WithContext(ctx).
		Preload("PlantImages").
		Where("user_id = ? AND custom_name = ?", userID, customName).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gardenRepository) AddPlantImage(ctx context.Context, image *entities.PlantImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}
