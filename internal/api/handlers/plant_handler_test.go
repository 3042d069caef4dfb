package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"Little-Gardener-Backend/pkg/gemini"
	"Little-Gardener-Backend/pkg/health"
	"Little-Gardener-Backend/pkg/identify"
	"Little-Gardener-Backend/pkg/species"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plantHandlerFixture struct {
	app        *fiber.App
	speciesCfg species.Config
}

func newPlantHandlerFixture(t *testing.T, modelURL string) *plantHandlerFixture {
	t.Helper()

	speciesCfg := species.Config{
		CacheDir:        filepath.Join(t.TempDir(), "plant-details"),
		DataDir:         t.TempDir(),
		SearchIndexPath: filepath.Join(t.TempDir(), "all_plants.json"),
		APIBaseURL:      "http://127.0.0.1:0",
		APIToken:        "test-token",
	}

	geminiClient := gemini.NewClientWithOptions("test-key", "test-model", modelURL, 5*time.Second)
	handler := NewPlantHandler(
		species.NewSpeciesService(speciesCfg),
		identify.NewIdentifyService(geminiClient),
		health.NewHealthService(geminiClient),
		validator.New(),
	)

	app := fiber.New()
	plants := app.Group("/api/v1/plants")
	plants.Post("/details", handler.GetPlantDetails)
	plants.Post("/browse", handler.Browse)
	plants.Post("/search", handler.Search)
	plants.Post("/identify", handler.Identify)
	plants.Post("/health", handler.AnalyzeHealth)

	return &plantHandlerFixture{app: app, speciesCfg: speciesCfg}
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestGetPlantDetails_InvalidIDReturns400(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	status, payload := postJSON(t, fixture.app, "/api/v1/plants/details", `{"id": "not-a-number"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
	assert.NotEmpty(t, payload["error"])
}

func TestGetPlantDetails_ServedFromCache(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	cached := `{"name": "Boston Fern", "watering": "Average"}`
	require.NoError(t, os.MkdirAll(fixture.speciesCfg.CacheDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(fixture.speciesCfg.CacheDir, "42.json"), []byte(cached), 0o644))

	status, payload := postJSON(t, fixture.app, "/api/v1/plants/details", `{"id": "42"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Plant details retrieved from cache", payload["message"])

	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "Boston Fern", data["name"])
}

func TestBrowse_BadPageParameter(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	status, payload := postJSON(t, fixture.app, "/api/v1/plants/browse", `{"page": "abc"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
}

func TestBrowse_DefaultsToFirstPage(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	pageContent := `[{"id": 1, "name": "Boston Fern"}]`
	require.NoError(t, os.WriteFile(filepath.Join(fixture.speciesCfg.DataDir, "plant_1.json"), []byte(pageContent), 0o644))

	status, payload := postJSON(t, fixture.app, "/api/v1/plants/browse", `{}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), payload["currentPage"])
	assert.Equal(t, true, payload["hasMorePages"])
	assert.Len(t, payload["plants"], 1)
}

func TestBrowse_PageOutOfRange(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	status, _ := postJSON(t, fixture.app, "/api/v1/plants/browse", fmt.Sprintf(`{"page": "%d"}`, species.TotalPages+1))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSearch_EmptyQueryReturns400(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	status, payload := postJSON(t, fixture.app, "/api/v1/plants/search", `{"query": "   "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
}

func TestSearch_MatchesIndex(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	index := `[{"id": 1, "name": "Boston Fern"}, {"id": 2, "name": "Snake Plant"}]`
	require.NoError(t, os.WriteFile(fixture.speciesCfg.SearchIndexPath, []byte(index), 0o644))

	status, payload := postJSON(t, fixture.app, "/api/v1/plants/search", `{"query": "fern"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, payload["plants"], 1)
}

func TestIdentify_MissingImageReturns400(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plants/identify", nil)
	resp, err := fixture.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIdentify_UnparsableReplyCarriesRawResponse(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply, _ := json.Marshal(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": "not json"}},
				}},
			},
		})
		w.Write(reply)
	}))
	defer model.Close()

	fixture := newPlantHandlerFixture(t, model.URL)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "leaf.jpg")
	require.NoError(t, err)
	_, err = io.WriteString(part, "fake-image-bytes")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plants/identify", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := fixture.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "not json", payload["rawResponse"])
}

func TestAnalyzeHealth_MissingImageURLReturns400(t *testing.T) {
	fixture := newPlantHandlerFixture(t, "")

	status, payload := postJSON(t, fixture.app, "/api/v1/plants/health", `{"plantName": "Fern1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
}
