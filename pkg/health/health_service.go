package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/pkg/gemini"
)

const healthPromptTemplate = `
You are a plant health expert for the gardening app "The Little Gardener". I'm sending you an image of a plant named "%s" (which appears to be a "%s" type of plant).

Please analyze the plant's health and provide a detailed assessment including:

1. Overall health status (Healthy, Needs attention, or Unhealthy)
2. Identification of any visible issues (yellowing, browning, spots, wilting, etc.)
3. Possible causes for any issues detected (pests, diseases, watering problems, nutrient deficiencies)
4. Recommendations for care and treatment

IMPORTANT: Your response must be in the following JSON format:
{
  "healthStatus": string (one of: "Healthy", "Needs attention", "Unhealthy"),
  "summary": string (brief 1-2 sentence overview),
  "observations": [string] (array of specific observations about the plant's appearance),
  "issues": [
    {
      "issue": string (name of issue),
      "description": string (brief description),
      "severity": string (one of: "Mild", "Moderate", "Severe"),
      "causes": [string] (potential causes)
    }
  ],
  "recommendations": [string] (specific actionable care tips),
  "generalCare": {
    "watering": string (watering advice),
    "light": string (light requirements),
    "soil": string (soil recommendations)
  }
}

If the plant appears healthy, still provide care recommendations to maintain its health.`

type (
	HealthService interface {
		AnalyzeHealth(ctx context.Context, req domain.HealthAnalysisRequest) (domain.HealthReport, error)
	}

	healthService struct {
		gemini     gemini.Client
		httpClient *http.Client
	}
)

func NewHealthService(geminiClient gemini.Client) HealthService {
	return &healthService{
		gemini:     geminiClient,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *healthService) AnalyzeHealth(ctx context.Context, req domain.HealthAnalysisRequest) (domain.HealthReport, error) {
	if req.ImageURL == "" {
		return domain.HealthReport{}, domain.ErrMissingImageURL
	}

	imageData, mimeType, err := s.fetchImage(ctx, req.ImageURL)
	if err != nil {
		return domain.HealthReport{}, err
	}

	prompt := fmt.Sprintf(healthPromptTemplate, req.PlantName, req.PlantType)
	cfg := gemini.GenerationConfig{
		Temperature:      0.4,
		TopP:             1,
		TopK:             32,
		MaxOutputTokens:  4096,
		ResponseMimeType: "application/json",
	}

	raw, err := s.gemini.GenerateContent(ctx, prompt, imageData, mimeType, cfg)
	if err != nil {
		return domain.HealthReport{}, err
	}

	var report domain.HealthReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return domain.HealthReport{}, &domain.UpstreamFormatError{Raw: raw, Err: err}
	}

	if report.HealthStatus == "" || report.Summary == "" {
		return domain.HealthReport{}, &domain.UpstreamFormatError{
			Raw: raw,
			Err: errors.New("response missing required health analysis data"),
		}
	}

	return report, nil
}

// fetchImage downloads the previously stored plant image server-side, which
// sidesteps the cross-origin restriction a client would face.
func (s *healthService) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", &domain.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("error fetching image from URL: %v", err),
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, "", domain.ErrUpstreamTimeout
		}
		return nil, "", &domain.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("error fetching image from URL: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to fetch image from URL: %s", resp.Status),
		}
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return imageData, mimeType, nil
}
