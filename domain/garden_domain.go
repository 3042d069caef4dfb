package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddPlant       = "Plant added to garden successfully"
	MessageSuccessGetGardenItems = "Garden items retrieved successfully"
	MessageSuccessAddPlantImage  = "Image added to plant successfully"
	MessageSuccessMyPlantDetails = "Plant details retrieved successfully"

	MessageFailedAddPlant       = "failed to add plant to garden"
	MessageFailedGetGardenItems = "failed to retrieve garden items"
	MessageFailedAddPlantImage  = "failed to add image to plant"
	MessageFailedMyPlantDetails = "failed to retrieve plant details"

	ErrInvalidPlantID      = errors.New("invalid plant ID")
	ErrPlantNotFound       = errors.New("plant not found in user's garden")
	ErrDuplicatePlantName  = errors.New("a plant with that name already exists in the garden")
	ErrMissingImage        = errors.New("no valid image file provided")
)

type (
	AddPlantRequest struct {
		Username   string `json:"username" form:"username" validate:"required"`
		CustomName string `json:"custom_name" form:"custom_name" validate:"required"`
		PlantID    string `json:"plantId" form:"plantId" validate:"required"`
		Location   string `json:"location" form:"location"`
		Notes      string `json:"notes" form:"notes"`
	}

	PlantImageResponse struct {
		ImageURL  string    `json:"image_url"`
		CreatedAt time.Time `json:"created_at"`
	}

	GardenItemResponse struct {
		ID          string               `json:"id"`
		CustomName  string               `json:"custom_name"`
		PlantID     int                  `json:"plantId"`
		Location    string               `json:"location,omitempty"`
		Notes       string               `json:"notes,omitempty"`
		PlantImages []PlantImageResponse `json:"plantImages"`
		CreatedAt   time.Time            `json:"created_at"`
	}

	GetGardenItemsRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
	}

	AddPlantImageRequest struct {
		UserID    string                `json:"userID" form:"userID" validate:"required"`
		PlantName string                `json:"plantName" form:"plantName" validate:"required"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	AddPlantImageResponse struct {
		ImageURL string `json:"imageUrl"`
	}

	MyPlantDetailsRequest struct {
		UserID    string `json:"userID" form:"userID" validate:"required"`
		PlantName string `json:"plantName" form:"plantName" validate:"required"`
	}

	MyPlantDetailsResponse struct {
		GardenItemResponse
		LatestImageURL   string               `json:"latest_image_url,omitempty"`
		BotanicalDetails *PlantDetailsResponse `json:"botanicalDetails"`
	}
)
