package openrouter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeVerifier(t *testing.T) {
	v1, err := GenerateCodeVerifier()
	require.NoError(t, err)
	v2, err := GenerateCodeVerifier()
	require.NoError(t, err)

	assert.NotEqual(t, v1, v2)
	assert.GreaterOrEqual(t, len(v1), 43)
	assert.NotContains(t, v1, "=")
}

func TestS256CodeChallenge(t *testing.T) {
	// RFC 7636 appendix B test vector.
	challenge := S256CodeChallenge("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge)
}

func TestAuthorizationURL(t *testing.T) {
	u := AuthorizationURL("http://localhost:8080/callback", "challenge123", CodeChallengeS256)

	assert.True(t, strings.HasPrefix(u, "https://openrouter.ai/auth?"))
	assert.Contains(t, u, "callback_url=http%3A%2F%2Flocalhost%3A8080%2Fcallback")
	assert.Contains(t, u, "code_challenge=challenge123")
	assert.Contains(t, u, "code_challenge_method=S256")
}
