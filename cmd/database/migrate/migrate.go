package migration

import (
	"fmt"
	"log"

	"Little-Gardener-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.GardenItem{}); err != nil {
		log.Fatalf("Error migrating garden item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PlantImage{}); err != nil {
		log.Fatalf("Error migrating plant image database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
