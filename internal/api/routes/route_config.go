package routes

import (
	"Little-Gardener-Backend/internal/api/handlers"
	"Little-Gardener-Backend/internal/middleware"
	"Little-Gardener-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	GardenHandler handlers.GardenHandler
	PlantHandler  handlers.PlantHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Garden()
	c.Plants()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Garden() {
	garden := c.App.Group("/api/v1/garden")
	{
		garden.Post("/plants", c.GardenHandler.AddPlant)
		garden.Post("/posts", c.GardenHandler.GetGardenItems)
		garden.Post("/images", c.GardenHandler.AddPlantImage)
		garden.Post("/my-plant", c.GardenHandler.GetMyPlantDetails)
	}
}

func (c *Config) Plants() {
	plants := c.App.Group("/api/v1/plants")
	{
		plants.Post("/details", c.PlantHandler.GetPlantDetails)
		plants.Post("/browse", c.PlantHandler.Browse)
		plants.Post("/search", c.PlantHandler.Search)
		plants.Post("/identify", c.PlantHandler.Identify)
		plants.Post("/health", c.PlantHandler.AnalyzeHealth)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
