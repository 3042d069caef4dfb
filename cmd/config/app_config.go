package config

import (
	"os"
	"time"

	"Little-Gardener-Backend/internal/api/handlers"
	"Little-Gardener-Backend/internal/api/routes"
	"Little-Gardener-Backend/internal/middleware"
	"Little-Gardener-Backend/internal/utils"
	"Little-Gardener-Backend/internal/utils/storage"
	"Little-Gardener-Backend/pkg/garden"
	"Little-Gardener-Backend/pkg/gemini"
	"Little-Gardener-Backend/pkg/health"
	"Little-Gardener-Backend/pkg/identify"
	"Little-Gardener-Backend/pkg/jwt"
	"Little-Gardener-Backend/pkg/species"
	"Little-Gardener-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	geminiClient := gemini.NewClient()

	// Repository
	userRepository := user.NewUserRepository(db)
	gardenRepository := garden.NewGardenRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	speciesService := species.NewSpeciesService(species.ConfigFromApp())
	gardenService := garden.NewGardenService(gardenRepository, userRepository, speciesService, s3)
	identifyService := identify.NewIdentifyService(geminiClient)
	healthService := health.NewHealthService(geminiClient)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	gardenHandler := handlers.NewGardenHandler(gardenService, validator)
	plantHandler := handlers.NewPlantHandler(speciesService, identifyService, healthService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		GardenHandler: gardenHandler,
		PlantHandler:  plantHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
