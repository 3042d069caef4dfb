package domain

import (
	"errors"
)

var (
	MessageSuccessPlantDetails      = "Plant details retrieved successfully"
	MessageSuccessPlantDetailsCache = "Plant details retrieved from cache"
	MessageSuccessBrowse            = "Browse successful"
	MessageSuccessSearch            = "Search successful"

	MessageFailedPlantDetails = "failed to retrieve plant details"
	MessageFailedBrowse       = "failed to browse plant catalog"
	MessageFailedSearch       = "failed to search plant catalog"

	ErrInvalidSpeciesID   = errors.New("invalid plant ID")
	ErrInvalidPage        = errors.New("invalid page number")
	ErrPageDataNotFound   = errors.New("page data file not found")
	ErrEmptySearchQuery   = errors.New("search query cannot be empty")
	ErrSearchIndexMissing = errors.New("plant data file could not be read")
)

type (
	PlantDetailsRequest struct {
		ID string `json:"id" form:"id" validate:"required"`
	}

	SunlightDuration struct {
		Min  string `json:"min"`
		Max  string `json:"max"`
		Unit string `json:"unit"`
	}

	// PlantDetailsResponse is the reshaped species detail record. It is also
	// the on-disk cache entry format, one file per species id.
	PlantDetailsResponse struct {
		Name             string           `json:"name"`
		ScientificName   *string          `json:"scientificName"`
		Family           *string          `json:"family"`
		ImageURL         *string          `json:"imageUrl"`
		Sunlight         []string         `json:"sunlight"`
		Watering         string           `json:"watering"`
		PruningMonth     []string         `json:"pruningMonth"`
		Attracts         []string         `json:"attracts"`
		FloweringSeason  string           `json:"floweringSeason"`
		NativeArea       *string          `json:"nativeArea"`
		Description      string           `json:"description"`
		SunlightDuration SunlightDuration `json:"sunlightDuration"`
	}

	CatalogEntry struct {
		ID             int     `json:"id"`
		Name           string  `json:"name"`
		ScientificName *string `json:"scientific_name"`
		Family         *string `json:"family"`
		ImageURL       *string `json:"image_url"`
	}

	BrowseRequest struct {
		Page string `json:"page" form:"page"`
	}

	BrowseResponse struct {
		Plants       []CatalogEntry `json:"plants"`
		CurrentPage  int            `json:"currentPage"`
		HasMorePages bool           `json:"hasMorePages"`
	}

	SearchRequest struct {
		Query string `json:"query" form:"query" validate:"required"`
	}

	SearchResponse struct {
		Plants []CatalogEntry `json:"plants"`
	}
)
