package openrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError_Envelope(t *testing.T) {
	body := []byte(`{"error":{"code":402,"message":"Insufficient credits"}}`)

	err := parseAPIError(402, "req-1", body)
	assert.Equal(t, 402, err.Status)
	assert.Equal(t, int64(402), err.Code)
	assert.Equal(t, "Insufficient credits", err.Message)
	assert.Equal(t, "req-1", err.RequestID)
	assert.Contains(t, err.Error(), "Insufficient credits")
}

func TestParseAPIError_ModerationMetadata(t *testing.T) {
	body := []byte(`{"error":{"code":403,"message":"flagged","metadata":{"reasons":["violence","hate"],"flagged_input":"...","provider_name":"OpenAI","model_slug":"gpt-4o"}}}`)

	err := parseAPIError(403, "", body)
	require.NotNil(t, err.Moderation)
	assert.Equal(t, []string{"violence", "hate"}, err.Moderation.Reasons)
	assert.Equal(t, "gpt-4o", err.Moderation.ModelSlug)
	assert.Contains(t, err.Error(), "violence")
}

func TestParseAPIError_ProviderMetadata(t *testing.T) {
	body := []byte(`{"error":{"code":502,"message":"provider error","metadata":{"provider_name":"Together","raw":{"detail":"capacity"}}}}`)

	err := parseAPIError(502, "", body)
	require.NotNil(t, err.Provider)
	assert.Equal(t, "Together", err.Provider.ProviderName)
	assert.Nil(t, err.Moderation)
}

func TestParseAPIError_UnrecognizedMetadata(t *testing.T) {
	body := []byte(`{"error":{"code":400,"message":"bad request","metadata":{"hint":"check the model id"}}}`)

	err := parseAPIError(400, "", body)
	assert.Nil(t, err.Moderation)
	assert.Nil(t, err.Provider)
	require.NotNil(t, err.Metadata)
	assert.Equal(t, "check the model id", err.Metadata["hint"])
}

func TestParseAPIError_VerbatimBody(t *testing.T) {
	err := parseAPIError(503, "", []byte("  service unavailable\n"))
	assert.Equal(t, int64(503), err.Code)
	assert.Equal(t, "service unavailable", err.Message)
}

func TestParseAPIError_EmptyBody(t *testing.T) {
	err := parseAPIError(500, "", nil)
	assert.Equal(t, 500, err.Status)
	assert.Empty(t, err.Message)
	assert.Contains(t, err.Error(), "500")
}
