package handlers

import (
	"errors"
	"io"
	"strconv"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/internal/api/presenters"
	"Little-Gardener-Backend/pkg/health"
	"Little-Gardener-Backend/pkg/identify"
	"Little-Gardener-Backend/pkg/species"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PlantHandler interface {
		GetPlantDetails(c *fiber.Ctx) error
		Browse(c *fiber.Ctx) error
		Search(c *fiber.Ctx) error
		Identify(c *fiber.Ctx) error
		AnalyzeHealth(c *fiber.Ctx) error
	}

	plantHandler struct {
		speciesService  species.SpeciesService
		identifyService identify.IdentifyService
		healthService   health.HealthService
		validator       *validator.Validate
	}
)

func NewPlantHandler(
	speciesService species.SpeciesService,
	identifyService identify.IdentifyService,
	healthService health.HealthService,
	validator *validator.Validate,
) PlantHandler {
	return &plantHandler{
		speciesService:  speciesService,
		identifyService: identifyService,
		healthService:   healthService,
		validator:       validator,
	}
}

func (h *plantHandler) GetPlantDetails(c *fiber.Ctx) error {
	req := new(domain.PlantDetailsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "Plant ID is required", err)
	}

	details, fromCache, err := h.speciesService.GetPlantDetails(c.Context(), req.ID)
	if err != nil {
		var upstreamErr *domain.UpstreamError
		switch {
		case errors.Is(err, domain.ErrInvalidSpeciesID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPlantDetails, err)
		case errors.Is(err, domain.ErrMissingAPIKey):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, "API configuration error", err)
		case errors.Is(err, domain.ErrUpstreamTimeout):
			return presenters.ErrorResponse(c, fiber.StatusGatewayTimeout, domain.MessageFailedPlantDetails, err)
		case errors.As(err, &upstreamErr):
			return presenters.ErrorResponse(c, upstreamErr.StatusCode, domain.MessageFailedPlantDetails, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedPlantDetails, err)
	}

	message := domain.MessageSuccessPlantDetails
	if fromCache {
		message = domain.MessageSuccessPlantDetailsCache
	}
	return presenters.SuccessResponse(c, fiber.Map{"data": details}, fiber.StatusOK, message)
}

func (h *plantHandler) Browse(c *fiber.Ctx) error {
	req := new(domain.BrowseRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	page := 1
	if req.Page != "" {
		parsed, err := strconv.Atoi(req.Page)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBrowse, domain.ErrInvalidPage)
		}
		page = parsed
	}

	res, err := h.speciesService.Browse(c.Context(), page)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPage):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBrowse, err)
		case errors.Is(err, domain.ErrPageDataNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedBrowse, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedBrowse, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"plants":       res.Plants,
		"currentPage":  res.CurrentPage,
		"hasMorePages": res.HasMorePages,
	}, fiber.StatusOK, domain.MessageSuccessBrowse)
}

func (h *plantHandler) Search(c *fiber.Ctx) error {
	req := new(domain.SearchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.speciesService.Search(c.Context(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySearchQuery) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearch, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSearch, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"plants": res.Plants}, fiber.StatusOK, domain.MessageSuccessSearch)
}

func (h *plantHandler) Identify(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIdentify, domain.ErrMissingImage)
	}

	src, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedIdentify, err)
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedIdentify, err)
	}

	res, err := h.identifyService.Identify(c.Context(), imageData, file.Header.Get("Content-Type"))
	if err != nil {
		return aiErrorResponse(c, domain.MessageFailedIdentify, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"data": res}, fiber.StatusOK, domain.MessageSuccessIdentify)
}

func (h *plantHandler) AnalyzeHealth(c *fiber.Ctx) error {
	req := new(domain.HealthAnalysisRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, "No image URL provided", err)
	}

	res, err := h.healthService.AnalyzeHealth(c.Context(), *req)
	if err != nil {
		return aiErrorResponse(c, domain.MessageFailedHealth, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"data": res}, fiber.StatusOK, domain.MessageSuccessHealth)
}

// aiErrorResponse maps the shared AI adapter failure modes onto HTTP
// statuses: 400 for missing input, 422 with the raw reply for format
// problems, 502 for a declined answer, 504 on timeout, upstream passthrough
// for dependent HTTP failures, 500 for configuration problems.
func aiErrorResponse(c *fiber.Ctx, message string, err error) error {
	var formatErr *domain.UpstreamFormatError
	var blockedErr *domain.UpstreamBlockedError
	var upstreamErr *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrMissingImage), errors.Is(err, domain.ErrMissingImageURL):
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, message, err)
	case errors.Is(err, domain.ErrMissingAPIKey):
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server configuration error", err)
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return presenters.ErrorResponse(c, fiber.StatusGatewayTimeout, message, err)
	case errors.As(err, &formatErr):
		return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, message, err, fiber.Map{"rawResponse": formatErr.Raw})
	case errors.As(err, &blockedErr):
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, message, err)
	case errors.As(err, &upstreamErr):
		return presenters.ErrorResponse(c, upstreamErr.StatusCode, message, err)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
}
