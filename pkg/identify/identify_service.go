package identify

import (
	"context"
	"encoding/json"
	"errors"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/pkg/gemini"
)

// plantsFileURI points at the pre-uploaded catalog database the model is
// constrained to answer from.
const plantsFileURI = "https://generativelanguage.googleapis.com/v1beta/files/t8vox35gpwgp"

const identificationPrompt = `
You are a plant identification assistant for a gardening app called "The Little Gardener".
I will send you an image of a plant. Please analyze it and identify the most likely plant species from the provided database.

IMPORTANT: Your response must be strictly in the following JSON format:
{
  "identifiedPlant": {
    "id": number,
    "name": string,
    "scientific_name": string,
    "family": string,
    "confidence": number (between 0-1)
  },
  "alternatives": [
    {
      "id": number,
      "name": string,
      "scientific_name": string,
      "confidence": number (between 0-1)
    }
  ],
  "notes": string (any useful information about the identification)
}

You MUST ONLY select plants from the database provided below. Do not invent new plants or data.
If you're unsure, provide the closest match but indicate lower confidence.

Database uri: ` + plantsFileURI

type (
	IdentifyService interface {
		Identify(ctx context.Context, imageData []byte, mimeType string) (domain.IdentifyResponse, error)
	}

	identifyService struct {
		gemini gemini.Client
	}
)

func NewIdentifyService(geminiClient gemini.Client) IdentifyService {
	return &identifyService{gemini: geminiClient}
}

func (s *identifyService) Identify(ctx context.Context, imageData []byte, mimeType string) (domain.IdentifyResponse, error) {
	if len(imageData) == 0 {
		return domain.IdentifyResponse{}, domain.ErrMissingImage
	}

	cfg := gemini.GenerationConfig{
		Temperature:      0.4,
		TopP:             1,
		TopK:             32,
		MaxOutputTokens:  10000,
		ResponseMimeType: "application/json",
	}

	raw, err := s.gemini.GenerateContent(ctx, identificationPrompt, imageData, mimeType, cfg)
	if err != nil {
		return domain.IdentifyResponse{}, err
	}

	var parsed domain.IdentifyResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return domain.IdentifyResponse{}, &domain.UpstreamFormatError{Raw: raw, Err: err}
	}

	if parsed.IdentifiedPlant.ID == 0 {
		return domain.IdentifyResponse{}, &domain.UpstreamFormatError{
			Raw: raw,
			Err: errors.New("response missing required plant identification data"),
		}
	}

	if parsed.Alternatives == nil {
		parsed.Alternatives = []domain.IdentifiedPlant{}
	}

	return parsed, nil
}
