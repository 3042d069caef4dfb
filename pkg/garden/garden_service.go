package garden

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/entities"
	"Little-Gardener-Backend/internal/utils/storage"
	"Little-Gardener-Backend/pkg/species"
	"Little-Gardener-Backend/pkg/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type (
	GardenService interface {
		AddPlant(ctx context.Context, req domain.AddPlantRequest) (domain.GardenItemResponse, error)
		GetGardenItems(ctx context.Context, username string) ([]domain.GardenItemResponse, error)
		AddPlantImage(ctx context.Context, req domain.AddPlantImageRequest) (domain.AddPlantImageResponse, error)
		GetMyPlantDetails(ctx context.Context, req domain.MyPlantDetailsRequest) (domain.MyPlantDetailsResponse, error)
	}

	gardenService struct {
		gardenRepository GardenRepository
		userRepository   user.UserRepository
		speciesService   species.SpeciesService
		s3               storage.AwsS3
	}
)

var whitespacePattern = regexp.MustCompile(`\s+`)

func NewGardenService(
	gardenRepository GardenRepository,
	userRepository user.UserRepository,
	speciesService species.SpeciesService,
	s3 storage.AwsS3,
) GardenService {
	return &gardenService{
		gardenRepository: gardenRepository,
		userRepository:   userRepository,
		speciesService:   speciesService,
		s3:               s3,
	}
}

func (s *gardenService) AddPlant(ctx context.Context, req domain.AddPlantRequest) (domain.GardenItemResponse, error) {
	plantID, err := strconv.Atoi(strings.TrimSpace(req.PlantID))
	if err != nil {
		return domain.GardenItemResponse{}, domain.ErrInvalidPlantID
	}

	owner, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GardenItemResponse{}, domain.ErrUserNotFound
		}
		return domain.GardenItemResponse{}, err
	}

	// Display names are the lookup key for image upload and detail requests,
	// so they must be unique within one user's garden.
	_, err = s.gardenRepository.GetGardenItemByName(ctx, owner.ID, req.CustomName)
	if err == nil {
		return domain.GardenItemResponse{}, domain.ErrDuplicatePlantName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.GardenItemResponse{}, err
	}

	item := &entities.GardenItem{
		ID:         uuid.New(),
		UserID:     owner.ID,
		CustomName: req.CustomName,
		PlantID:    plantID,
		Location:   req.Location,
		Notes:      req.Notes,
	}

	if err := s.gardenRepository.AddGardenItem(ctx, item); err != nil {
		return domain.GardenItemResponse{}, err
	}

	return toGardenItemResponse(item), nil
}

func (s *gardenService) GetGardenItems(ctx context.Context, username string) ([]domain.GardenItemResponse, error) {
	owner, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	items, err := s.gardenRepository.GetGardenItemsByUserID(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.GardenItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toGardenItemResponse(item))
	}
	return response, nil
}

func (s *gardenService) AddPlantImage(ctx context.Context, req domain.AddPlantImageRequest) (domain.AddPlantImageResponse, error) {
	item, err := s.findUserPlant(ctx, req.UserID, req.PlantName)
	if err != nil {
		return domain.AddPlantImageResponse{}, err
	}

	sanitizedName := whitespacePattern.ReplaceAllString(req.PlantName, "_")
	fileName := fmt.Sprintf("plant_%d_%s", time.Now().UnixMilli(), sanitizedName)

	objectKey, err := s.s3.UploadFile(fileName, req.Image, "uploads/plants", storage.AllowImage...)
	if err != nil {
		return domain.AddPlantImageResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	image := &entities.PlantImage{
		ID:           uuid.New(),
		GardenItemID: item.ID,
		ImageURL:     imageURL,
		CreatedAt:    time.Now(),
	}

	if err := s.gardenRepository.AddPlantImage(ctx, image); err != nil {
		return domain.AddPlantImageResponse{}, err
	}

	return domain.AddPlantImageResponse{ImageURL: imageURL}, nil
}

func (s *gardenService) GetMyPlantDetails(ctx context.Context, req domain.MyPlantDetailsRequest) (domain.MyPlantDetailsResponse, error) {
	item, err := s.findUserPlant(ctx, req.UserID, req.PlantName)
	if err != nil {
		return domain.MyPlantDetailsResponse{}, err
	}

	response := domain.MyPlantDetailsResponse{
		GardenItemResponse: toGardenItemResponse(item),
	}

	if latest := latestImage(item.PlantImages); latest != nil {
		response.LatestImageURL = latest.ImageURL
	}

	// Botanical detail absence degrades to a null sub-field; it never fails
	// the whole request.
	details, _, err := s.speciesService.GetPlantDetails(ctx, strconv.Itoa(item.PlantID))
	if err != nil {
		log.Warn().Int("plant_id", item.PlantID).Err(err).Msg("could not resolve botanical details for garden item")
		return response, nil
	}
	response.BotanicalDetails = &details

	return response, nil
}

func (s *gardenService) findUserPlant(ctx context.Context, username, plantName string) (*entities.GardenItem, error) {
	owner, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	item, err := s.gardenRepository.GetGardenItemByName(ctx, owner.ID, plantName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}
	return item, nil
}

// latestImage picks the image with the maximum creation timestamp. Row order
// is not chronological for records migrated from the legacy write path, so
// position must not be trusted.
func latestImage(images []*entities.PlantImage) *entities.PlantImage {
	var latest *entities.PlantImage
	for _, img := range images {
		if latest == nil || img.CreatedAt.After(latest.CreatedAt) {
			latest = img
		}
	}
	return latest
}

func toGardenItemResponse(item *entities.GardenItem) domain.GardenItemResponse {
	images := make([]domain.PlantImageResponse, 0, len(item.PlantImages))
	for _, img := range item.PlantImages {
		images = append(images, domain.PlantImageResponse{
			ImageURL:  img.ImageURL,
			CreatedAt: img.CreatedAt,
		})
	}

	return domain.GardenItemResponse{
		ID:          item.ID.String(),
		CustomName:  item.CustomName,
		PlantID:     item.PlantID,
		Location:    item.Location,
		Notes:       item.Notes,
		PlantImages: images,
		CreatedAt:   item.CreatedAt,
	}
}
