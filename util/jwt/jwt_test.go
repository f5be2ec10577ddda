package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	tok, err := Issue("secret", "raj", "owner", 24)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	for _, header := range []string{tok, "Bearer " + tok, "bearer " + tok} {
		claims, err := ParseAuth(header, "secret")
		require.NoError(t, err, header)
		require.Equal(t, "raj", claims["sub"])
		require.Equal(t, "owner", claims["role"])
	}
}

func TestParseAuth_Failures(t *testing.T) {
	tok, err := Issue("secret", "raj", "customer", 24)
	require.NoError(t, err)

	_, err = ParseAuth(tok, "other-secret")
	require.Error(t, err)

	_, err = ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer not.a.token", "secret")
	require.Error(t, err)
}
