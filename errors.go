package openrouter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrKeyNotConfigured is returned when a request requires an API key and
// none was provided.
var ErrKeyNotConfigured = errors.New("openrouter: api key not configured")

// APIError is an error response from the OpenRouter API. When the error
// metadata identifies a moderation or provider failure, the corresponding
// field is populated.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Code is the application-level error code, when present.
	Code int64

	// Message is the human-readable error description.
	Message string

	// RequestID is the upstream request id, when the response carried one.
	RequestID string

	// Metadata holds any error metadata not recognized as moderation or
	// provider context.
	Metadata map[string]any

	// Moderation is set for content moderation violations.
	Moderation *ModerationMetadata

	// Provider is set for failures attributed to a specific model provider.
	Provider *ProviderMetadata
}

// ModerationMetadata describes a content moderation rejection.
type ModerationMetadata struct {
	Reasons      []string `json:"reasons"`
	FlaggedInput string   `json:"flagged_input"`
	ProviderName string   `json:"provider_name"`
	ModelSlug    string   `json:"model_slug"`
}

// ProviderMetadata describes an error relayed from an upstream provider.
type ProviderMetadata struct {
	ProviderName string          `json:"provider_name"`
	Raw          json.RawMessage `json:"raw"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "openrouter: api error %d", e.Status)
	if e.Code != 0 && e.Code != int64(e.Status) {
		fmt.Fprintf(&b, " (code %d)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Moderation != nil {
		fmt.Fprintf(&b, " (moderation: %s)", strings.Join(e.Moderation.Reasons, ", "))
	}
	if e.Provider != nil {
		fmt.Fprintf(&b, " (provider: %s)", e.Provider.ProviderName)
	}
	return b.String()
}

type apiErrorEnvelope struct {
	Error struct {
		Code     json.Number     `json:"code"`
		Message  string          `json:"message"`
		Metadata json.RawMessage `json:"metadata,omitempty"`
	} `json:"error"`
}

// parseAPIError builds an *APIError from a non-success response body. A
// body that does not match the error envelope is reported verbatim.
func parseAPIError(status int, requestID string, body []byte) *APIError {
	apiErr := &APIError{
		Status:    status,
		RequestID: requestID,
	}

	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		apiErr.Code = int64(status)
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Message = envelope.Error.Message
	if code, err := envelope.Error.Code.Int64(); err == nil {
		apiErr.Code = code
	}

	if len(envelope.Error.Metadata) == 0 {
		return apiErr
	}

	var moderation ModerationMetadata
	if err := json.Unmarshal(envelope.Error.Metadata, &moderation); err == nil && len(moderation.Reasons) > 0 {
		apiErr.Moderation = &moderation
		return apiErr
	}

	var provider ProviderMetadata
	if err := json.Unmarshal(envelope.Error.Metadata, &provider); err == nil &&
		provider.ProviderName != "" && len(provider.Raw) > 0 {
		apiErr.Provider = &provider
		return apiErr
	}

	var raw map[string]any
	if err := json.Unmarshal(envelope.Error.Metadata, &raw); err == nil {
		apiErr.Metadata = raw
	}

	return apiErr
}
