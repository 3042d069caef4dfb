package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/internal/utils"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-pro"
	defaultTimeout = 30 * time.Second
)

type (
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		TopP             float64 `json:"topP"`
		TopK             int     `json:"topK"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		ResponseMimeType string  `json:"responseMimeType"`
	}

	// Client sends a prompt plus one inline image to the Gemini
	// generateContent endpoint and returns the raw reply text. Single
	// attempt, no retries; the HTTP client timeout is the only bound.
	Client interface {
		GenerateContent(ctx context.Context, prompt string, imageData []byte, mimeType string, cfg GenerationConfig) (string, error)
	}

	client struct {
		httpClient *http.Client
		apiKey     string
		model      string
		baseURL    string
	}
)

func NewClient() Client {
	return NewClientWithOptions(
		utils.GetConfig("GEMINI_API_KEY"),
		utils.GetConfig("GEMINI_MODEL"),
		utils.GetConfig("GEMINI_API_URL"),
		defaultTimeout,
	)
}

func NewClientWithOptions(apiKey, model, baseURL string, timeout time.Duration) Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
	}
}

func (c *client) GenerateContent(ctx context.Context, prompt string, imageData []byte, mimeType string, cfg GenerationConfig) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(imageData),
						},
					},
				},
			},
		},
		"generationConfig": cfg,
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return "", domain.ErrUpstreamTimeout
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		reason := geminiResp.PromptFeedback.BlockReason
		if reason == "" {
			reason = "Unknown reason or no content"
		}
		return "", &domain.UpstreamBlockedError{Reason: reason}
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
