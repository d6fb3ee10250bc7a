package openrouter

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// CodeChallengeMethod selects how the PKCE verifier was hashed.
type CodeChallengeMethod string

const (
	CodeChallengePlain CodeChallengeMethod = "plain"
	CodeChallengeS256  CodeChallengeMethod = "S256"
)

// AuthKeyExchange is the body of POST /auth/keys, exchanging an OAuth
// authorization code for a user-scoped API key.
type AuthKeyExchange struct {
	Code                string              `json:"code"`
	CodeVerifier        string              `json:"code_verifier,omitempty"`
	CodeChallengeMethod CodeChallengeMethod `json:"code_challenge_method,omitempty"`
}

type authKeyResponse struct {
	Key    string `json:"key"`
	UserID string `json:"user_id,omitempty"`
}

// GenerateCodeVerifier returns a fresh PKCE code verifier.
func GenerateCodeVerifier() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// S256CodeChallenge derives the S256 challenge for a code verifier.
func S256CodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// AuthorizationURL builds the user-facing OAuth URL that, once approved,
// redirects to callbackURL with a code query parameter.
func AuthorizationURL(callbackURL, codeChallenge string, method CodeChallengeMethod) string {
	query := url.Values{"callback_url": {callbackURL}}
	if codeChallenge != "" {
		query.Set("code_challenge", codeChallenge)
		query.Set("code_challenge_method", string(method))
	}
	return "https://openrouter.ai/auth?" + query.Encode()
}

// ExchangeCodeForKey trades an OAuth authorization code for an API key.
// The endpoint itself is unauthenticated, so this works without a
// configured client. Pass nil to use http.DefaultClient.
func ExchangeCodeForKey(ctx context.Context, httpClient *http.Client, exchange *AuthKeyExchange) (string, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	payload, err := json.Marshal(exchange)
	if err != nil {
		return "", fmt.Errorf("encode auth exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, DefaultBaseURL+"/auth/keys", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("exchange auth code: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", parseAPIError(resp.StatusCode, resp.Header.Get("X-Request-Id"), body)
	}

	var out authKeyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if out.Key == "" {
		return "", fmt.Errorf("auth exchange returned no key")
	}
	return out.Key, nil
}
