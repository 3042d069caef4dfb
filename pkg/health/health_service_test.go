package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]interface{}{{"text": text}},
			}},
		},
	})
	return string(body)
}

func newImageServer(t *testing.T, status int, contentType string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		fmt.Fprint(w, "fake-image-bytes")
	}))
	t.Cleanup(server.Close)
	return server
}

const healthyReply = `{
	"healthStatus": "Healthy",
	"summary": "The fern looks vigorous.",
	"observations": ["Uniformly green fronds"],
	"issues": [],
	"recommendations": ["Keep soil evenly moist"],
	"generalCare": {"watering": "Weekly", "light": "Indirect", "soil": "Peaty"}
}`

func TestAnalyzeHealth_Success(t *testing.T) {
	var promptSeen string
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		promptSeen = req.Contents[0].Parts[0].Text
		fmt.Fprint(w, geminiReply(healthyReply))
	}))
	defer model.Close()

	images := newImageServer(t, http.StatusOK, "image/png")
	svc := NewHealthService(gemini.NewClientWithOptions("test-key", "test-model", model.URL, 5*time.Second))

	report, err := svc.AnalyzeHealth(context.Background(), domain.HealthAnalysisRequest{
		ImageURL:  images.URL + "/fern.png",
		PlantName: "Fern1",
		PlantType: "Boston Fern",
	})
	require.NoError(t, err)

	assert.Equal(t, "Healthy", report.HealthStatus)
	assert.Equal(t, "The fern looks vigorous.", report.Summary)
	assert.Equal(t, "Weekly", report.GeneralCare.Watering)
	assert.True(t, strings.Contains(promptSeen, `"Fern1"`), "prompt must carry the plant name")
	assert.True(t, strings.Contains(promptSeen, `"Boston Fern"`), "prompt must carry the plant type")
}

func TestAnalyzeHealth_MissingImageURL(t *testing.T) {
	svc := NewHealthService(gemini.NewClientWithOptions("test-key", "", "", time.Second))

	_, err := svc.AnalyzeHealth(context.Background(), domain.HealthAnalysisRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingImageURL)
}

func TestAnalyzeHealth_ImageFetchFailure(t *testing.T) {
	images := newImageServer(t, http.StatusNotFound, "")
	svc := NewHealthService(gemini.NewClientWithOptions("test-key", "", "", time.Second))

	_, err := svc.AnalyzeHealth(context.Background(), domain.HealthAnalysisRequest{
		ImageURL: images.URL + "/gone.jpg",
	})
	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
}

func TestAnalyzeHealth_NonJSONReply(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("the plant seems fine to me"))
	}))
	defer model.Close()

	images := newImageServer(t, http.StatusOK, "image/jpeg")
	svc := NewHealthService(gemini.NewClientWithOptions("test-key", "", model.URL, 5*time.Second))

	_, err := svc.AnalyzeHealth(context.Background(), domain.HealthAnalysisRequest{
		ImageURL: images.URL + "/fern.jpg",
	})
	var formatErr *domain.UpstreamFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "the plant seems fine to me", formatErr.Raw)
}

func TestAnalyzeHealth_ReplyMissingMandatoryFields(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply(`{"healthStatus": "Healthy"}`))
	}))
	defer model.Close()

	images := newImageServer(t, http.StatusOK, "image/jpeg")
	svc := NewHealthService(gemini.NewClientWithOptions("test-key", "", model.URL, 5*time.Second))

	_, err := svc.AnalyzeHealth(context.Background(), domain.HealthAnalysisRequest{
		ImageURL: images.URL + "/fern.jpg",
	})
	var formatErr *domain.UpstreamFormatError
	require.ErrorAs(t, err, &formatErr)
}
