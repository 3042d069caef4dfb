package handlers

import (
	"errors"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/internal/api/presenters"
	"Little-Gardener-Backend/pkg/garden"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GardenHandler interface {
		AddPlant(c *fiber.Ctx) error
		GetGardenItems(c *fiber.Ctx) error
		AddPlantImage(c *fiber.Ctx) error
		GetMyPlantDetails(c *fiber.Ctx) error
	}

	gardenHandler struct {
		gardenService garden.GardenService
		validator     *validator.Validate
	}
)

func NewGardenHandler(gardenService garden.GardenService, validator *validator.Validate) GardenHandler {
	return &gardenHandler{
		gardenService: gardenService,
		validator:     validator,
	}
}

func (h *gardenHandler) AddPlant(c *fiber.Ctx) error {
	req := new(domain.AddPlantRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields", err)
	}

	res, err := h.gardenService.AddPlant(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddPlant, err)
		case errors.Is(err, domain.ErrInvalidPlantID), errors.Is(err, domain.ErrDuplicatePlantName):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddPlant, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddPlant, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"plant": res}, fiber.StatusOK, domain.MessageSuccessAddPlant)
}

func (h *gardenHandler) GetGardenItems(c *fiber.Ctx) error {
	req := new(domain.GetGardenItemsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "Username is required", err)
	}

	items, err := h.gardenService.GetGardenItems(c.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetGardenItems, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetGardenItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"gardenItems": items}, fiber.StatusOK, domain.MessageSuccessGetGardenItems)
}

func (h *gardenHandler) AddPlantImage(c *fiber.Ctx) error {
	req := new(domain.AddPlantImageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields", domain.ErrMissingImage)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields", err)
	}

	res, err := h.gardenService.AddPlantImage(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPlantNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddPlantImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddPlantImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"imageUrl": res.ImageURL}, fiber.StatusOK, domain.MessageSuccessAddPlantImage)
}

func (h *gardenHandler) GetMyPlantDetails(c *fiber.Ctx) error {
	req := new(domain.MyPlantDetailsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "User ID and plant name are required", err)
	}

	res, err := h.gardenService.GetMyPlantDetails(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPlantNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedMyPlantDetails, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedMyPlantDetails, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"data": res}, fiber.StatusOK, domain.MessageSuccessMyPlantDetails)
}
