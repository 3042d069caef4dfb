package species

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/internal/utils"

	"github.com/rs/zerolog/log"
)

// TotalPages is the number of pre-generated catalog page files provisioned
// out-of-band by the plant data scraper.
const TotalPages = 337

const defaultAPIBaseURL = "https://perenual.com"

type (
	SpeciesService interface {
		// GetPlantDetails resolves a species id to its detail record,
		// consulting the per-id file cache before the upstream API. The bool
		// result reports whether the record came from cache.
		GetPlantDetails(ctx context.Context, idStr string) (domain.PlantDetailsResponse, bool, error)
		Browse(ctx context.Context, page int) (domain.BrowseResponse, error)
		Search(ctx context.Context, query string) (domain.SearchResponse, error)
	}

	Config struct {
		CacheDir        string
		DataDir         string
		SearchIndexPath string
		APIBaseURL      string
		APIToken        string
		Timeout         time.Duration
	}

	speciesService struct {
		cfg        Config
		httpClient *http.Client
	}
)

func NewSpeciesService(cfg Config) SpeciesService {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &speciesService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ConfigFromApp builds the service configuration from the loaded config file.
func ConfigFromApp() Config {
	return Config{
		CacheDir:        utils.GetConfig("PLANT_CACHE_DIR"),
		DataDir:         utils.GetConfig("PLANT_DATA_DIR"),
		SearchIndexPath: utils.GetConfig("PLANT_SEARCH_INDEX"),
		APIBaseURL:      utils.GetConfig("PERENUAL_API_URL"),
		APIToken:        utils.GetConfig("PERENUAL_TOKEN"),
	}
}

// perenualDetails is the raw upstream species detail payload, limited to the
// fields this service reshapes.
type perenualDetails struct {
	ID             int      `json:"id"`
	CommonName     string   `json:"common_name"`
	ScientificName []string `json:"scientific_name"`
	Family         string   `json:"family"`
	DefaultImage   *struct {
		OriginalURL string `json:"original_url"`
	} `json:"default_image"`
	Sunlight                 []string `json:"sunlight"`
	PruningMonth             []string `json:"pruning_month"`
	Attracts                 []string `json:"attracts"`
	FloweringSeason          string   `json:"flowering_season"`
	Description              string   `json:"description"`
	Origin                   []string `json:"origin"`
	Watering                 string   `json:"watering"`
	WateringGeneralBenchmark *struct {
		Value interface{} `json:"value"`
		Unit  string      `json:"unit"`
	} `json:"watering_general_benchmark"`
	SunlightDuration domain.SunlightDuration `json:"xSunlightDuration"`
}

func (s *speciesService) GetPlantDetails(ctx context.Context, idStr string) (domain.PlantDetailsResponse, bool, error) {
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil || id < 0 {
		return domain.PlantDetailsResponse{}, false, domain.ErrInvalidSpeciesID
	}

	cachePath := filepath.Join(s.cfg.CacheDir, fmt.Sprintf("%d.json", id))
	if cached, err := os.ReadFile(cachePath); err == nil {
		var details domain.PlantDetailsResponse
		if err := json.Unmarshal(cached, &details); err == nil {
			return details, true, nil
		}
		log.Warn().Int("plant_id", id).Err(err).Msg("unreadable plant detail cache entry, refetching")
	}

	if s.cfg.APIToken == "" {
		return domain.PlantDetailsResponse{}, false, domain.ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/api/v2/species/details/%d?key=%s", s.cfg.APIBaseURL, id, s.cfg.APIToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.PlantDetailsResponse{}, false, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return domain.PlantDetailsResponse{}, false, domain.ErrUpstreamTimeout
		}
		return domain.PlantDetailsResponse{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.PlantDetailsResponse{}, false, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to fetch plant details: %s", strings.TrimSpace(string(bodyBytes))),
		}
	}

	var raw perenualDetails
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.PlantDetailsResponse{}, false, err
	}

	details := formatDetails(raw)

	// Best effort: a failed cache write must not fail the request. Two
	// concurrent first-requests may both miss and both write here; the
	// second write overwrites the first with identical data.
	if err := s.writeCache(cachePath, details); err != nil {
		log.Warn().Int("plant_id", id).Err(err).Msg("failed to write plant detail cache entry")
	}

	return details, false, nil
}

func (s *speciesService) writeCache(cachePath string, details domain.PlantDetailsResponse) error {
	if err := os.MkdirAll(s.cfg.CacheDir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath, data, 0o644)
}

func formatDetails(raw perenualDetails) domain.PlantDetailsResponse {
	name := raw.CommonName
	if name == "" {
		name = "N/A"
	}

	var scientificName *string
	if len(raw.ScientificName) > 0 {
		scientificName = &raw.ScientificName[0]
	}

	var family *string
	if raw.Family != "" {
		family = &raw.Family
	}

	var imageURL *string
	if raw.DefaultImage != nil && raw.DefaultImage.OriginalURL != "" {
		imageURL = &raw.DefaultImage.OriginalURL
	}

	var nativeArea *string
	if len(raw.Origin) > 0 {
		joined := strings.Join(raw.Origin, ", ")
		nativeArea = &joined
	}

	sunlight := raw.Sunlight
	if sunlight == nil {
		sunlight = []string{}
	}

	return domain.PlantDetailsResponse{
		Name:             name,
		ScientificName:   scientificName,
		Family:           family,
		ImageURL:         imageURL,
		Sunlight:         sunlight,
		Watering:         determineWateringInfo(raw),
		PruningMonth:     raw.PruningMonth,
		Attracts:         raw.Attracts,
		FloweringSeason:  raw.FloweringSeason,
		NativeArea:       nativeArea,
		Description:      raw.Description,
		SunlightDuration: raw.SunlightDuration,
	}
}

// determineWateringInfo derives the watering text from the base descriptor
// plus the upstream benchmark when one exists.
func determineWateringInfo(raw perenualDetails) string {
	info := raw.Watering
	if raw.WateringGeneralBenchmark != nil && raw.WateringGeneralBenchmark.Value != nil {
		value := strings.Trim(fmt.Sprintf("%v", raw.WateringGeneralBenchmark.Value), "\"")
		info += fmt.Sprintf(" (every %s %s)", value, raw.WateringGeneralBenchmark.Unit)
	}
	if info == "" {
		return "as needed based on soil moisture"
	}
	return info
}

func (s *speciesService) Browse(ctx context.Context, page int) (domain.BrowseResponse, error) {
	if page < 1 || page > TotalPages {
		return domain.BrowseResponse{}, domain.ErrInvalidPage
	}

	filePath := filepath.Join(s.cfg.DataDir, fmt.Sprintf("plant_%d.json", page))
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.BrowseResponse{}, domain.ErrPageDataNotFound
		}
		return domain.BrowseResponse{}, err
	}

	var plants []domain.CatalogEntry
	if err := json.Unmarshal(fileContent, &plants); err != nil {
		return domain.BrowseResponse{}, err
	}

	return domain.BrowseResponse{
		Plants:       plants,
		CurrentPage:  page,
		HasMorePages: page < TotalPages,
	}, nil
}

func (s *speciesService) Search(ctx context.Context, query string) (domain.SearchResponse, error) {
	normalizedQuery := strings.ToLower(strings.TrimSpace(query))
	if normalizedQuery == "" {
		return domain.SearchResponse{}, domain.ErrEmptySearchQuery
	}

	fileContent, err := os.ReadFile(s.cfg.SearchIndexPath)
	if err != nil {
		return domain.SearchResponse{}, domain.ErrSearchIndexMissing
	}

	var allPlants []domain.CatalogEntry
	if err := json.Unmarshal(fileContent, &allPlants); err != nil {
		return domain.SearchResponse{}, domain.ErrSearchIndexMissing
	}

	// Full scan on every call; the index is small enough that no ranking or
	// pagination is applied.
	results := make([]domain.CatalogEntry, 0)
	for _, plant := range allPlants {
		if strings.Contains(strings.ToLower(plant.Name), normalizedQuery) {
			results = append(results, plant)
		}
	}

	return domain.SearchResponse{Plants: results}, nil
}
