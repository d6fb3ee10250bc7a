package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListProviders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/providers", r.URL.Path)
		w.Write([]byte(`{"data":[{"name":"DeepInfra","slug":"deepinfra","privacy_policy_url":"https://deepinfra.com/privacy"},{"name":"Groq","slug":"groq"}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-or-test", WithBaseURL(server.URL))

	providers, err := client.ListProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "deepinfra", providers[0].Slug)
	assert.Equal(t, "https://deepinfra.com/privacy", providers[0].PrivacyPolicyURL)
}

func TestClient_CountModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/count", r.URL.Path)
		w.Write([]byte(`{"data":{"count":412}}`))
	}))
	defer server.Close()

	client := NewClient("sk-or-test", WithBaseURL(server.URL))

	n, err := client.CountModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 412, n)
}

func TestClient_ListZDREndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/endpoints/zdr", r.URL.Path)
		w.Write([]byte(`{"data":[{"name":"ep","model_id":"org/model","model_name":"Model","provider_name":"Groq","tag":"groq","context_length":8192,"uptime_last_30m":99.5,"latency_last_30m":{"p50":0.4,"p75":0.6,"p90":0.9,"p99":1.8}}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-or-test", WithBaseURL(server.URL))

	endpoints, err := client.ListZDREndpoints(context.Background())
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "org/model", endpoints[0].ModelID)
	require.NotNil(t, endpoints[0].LatencyLast30m)
	assert.Equal(t, 0.9, endpoints[0].LatencyLast30m.P90)
}

func TestClient_GetActivityDateQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity", r.URL.Path)
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("date"))
		w.Write([]byte(`{"data":[{"date":"2026-08-01","model":"org/model","model_permaslug":"org/model-v1","endpoint_id":"ep-1","provider_name":"Groq","usage":0.12,"requests":30,"prompt_tokens":1200,"completion_tokens":400,"reasoning_tokens":0}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-or-test", WithBaseURL(server.URL))

	items, err := client.GetActivity(context.Background(), "2026-08-01")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ep-1", items[0].EndpointID)
	assert.Equal(t, 30.0, items[0].Requests)
}
