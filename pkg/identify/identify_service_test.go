package identify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// geminiReply wraps a model reply text in the generateContent response shape.
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

func newServiceAgainst(t *testing.T, handler http.HandlerFunc) IdentifyService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := gemini.NewClientWithOptions("test-key", "test-model", server.URL, 5*time.Second)
	return NewIdentifyService(client)
}

func TestIdentify_Success(t *testing.T) {
	reply := `{
		"identifiedPlant": {"id": 42, "name": "Boston Fern", "scientific_name": "Nephrolepis exaltata", "family": "Lomariopsidaceae", "confidence": 0.92},
		"alternatives": [{"id": 7, "name": "Sword Fern", "scientific_name": "Polystichum munitum", "confidence": 0.41}],
		"notes": "Fronds are characteristic."
	}`
	svc := newServiceAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply(reply))
	})

	res, err := svc.Identify(context.Background(), []byte("fake-image-bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 42, res.IdentifiedPlant.ID)
	assert.Equal(t, "Boston Fern", res.IdentifiedPlant.Name)
	assert.InDelta(t, 0.92, res.IdentifiedPlant.Confidence, 0.001)
	require.Len(t, res.Alternatives, 1)
	assert.Equal(t, "Sword Fern", res.Alternatives[0].Name)
	assert.Equal(t, "Fronds are characteristic.", res.Notes)
}

func TestIdentify_NoAlternativesDefaultsToEmptyList(t *testing.T) {
	reply := `{"identifiedPlant": {"id": 42, "name": "Boston Fern", "confidence": 0.9}}`
	svc := newServiceAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply(reply))
	})

	res, err := svc.Identify(context.Background(), []byte("fake-image-bytes"), "image/jpeg")
	require.NoError(t, err)
	require.NotNil(t, res.Alternatives)
	assert.Empty(t, res.Alternatives)
}

func TestIdentify_NonJSONReplyReturnsRawText(t *testing.T) {
	svc := newServiceAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("not json"))
	})

	_, err := svc.Identify(context.Background(), []byte("fake-image-bytes"), "image/jpeg")
	var formatErr *domain.UpstreamFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "not json", formatErr.Raw)
}

func TestIdentify_ReplyMissingPlantID(t *testing.T) {
	svc := newServiceAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply(`{"identifiedPlant": {"name": "Boston Fern"}}`))
	})

	_, err := svc.Identify(context.Background(), []byte("fake-image-bytes"), "image/jpeg")
	var formatErr *domain.UpstreamFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Raw, "Boston Fern")
}

func TestIdentify_BlockedPrompt(t *testing.T) {
	svc := newServiceAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`)
	})

	_, err := svc.Identify(context.Background(), []byte("fake-image-bytes"), "image/jpeg")
	var blockedErr *domain.UpstreamBlockedError
	require.ErrorAs(t, err, &blockedErr)
	assert.Equal(t, "SAFETY", blockedErr.Reason)
}

func TestIdentify_UpstreamErrorPassesThrough(t *testing.T) {
	svc := newServiceAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := svc.Identify(context.Background(), []byte("fake-image-bytes"), "image/jpeg")
	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
}

func TestIdentify_MissingImage(t *testing.T) {
	called := false
	svc := newServiceAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.Identify(context.Background(), nil, "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrMissingImage)
	assert.False(t, called, "model must not be invoked without an image")
}

func TestIdentify_MissingAPIKey(t *testing.T) {
	client := gemini.NewClientWithOptions("", "test-model", "http://127.0.0.1:0", time.Second)
	svc := NewIdentifyService(client)

	_, err := svc.Identify(context.Background(), []byte("fake-image-bytes"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}
