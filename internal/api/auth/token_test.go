package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawlig/go-dog-registry/config"
	"github.com/pawlig/go-dog-registry/internal/types"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:       "test-secret",
		Issuer:          "test-issuer",
		Audience:        "test-audience",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestIssueAndParseToken(t *testing.T) {
	cfg := testJWTConfig()

	t.Run("AccessTokenRoundtrip", func(t *testing.T) {
		token, err := IssueToken(cfg, "a@b.com", types.TokenTypeAccess, cfg.AccessTokenTTL)
		require.NoError(t, err)

		claims, err := ParseToken(cfg, token, types.TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", claims.Subject)
		assert.Equal(t, types.TokenTypeAccess, claims.TokenType)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("ExpiredTokenRejected", func(t *testing.T) {
		token, err := IssueToken(cfg, "a@b.com", types.TokenTypeAccess, -time.Minute)
		require.NoError(t, err)

		_, err = ParseToken(cfg, token, types.TokenTypeAccess)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("RefreshTokenFailsAccessCheck", func(t *testing.T) {
		token, err := IssueToken(cfg, "a@b.com", types.TokenTypeRefresh, cfg.RefreshTokenTTL)
		require.NoError(t, err)

		_, err = ParseToken(cfg, token, types.TokenTypeAccess)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("AccessTokenFailsRefreshCheck", func(t *testing.T) {
		token, err := IssueToken(cfg, "a@b.com", types.TokenTypeAccess, cfg.AccessTokenTTL)
		require.NoError(t, err)

		_, err = ParseToken(cfg, token, types.TokenTypeRefresh)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("TamperedSignatureRejected", func(t *testing.T) {
		token, err := IssueToken(cfg, "a@b.com", types.TokenTypeAccess, cfg.AccessTokenTTL)
		require.NoError(t, err)

		otherCfg := cfg
		otherCfg.SecretKey = "another-secret"
		_, err = ParseToken(otherCfg, token, types.TokenTypeAccess)
		assert.Error(t, err)
	})

	t.Run("IssuerMismatchRejected", func(t *testing.T) {
		otherCfg := cfg
		otherCfg.Issuer = "someone-else"
		token, err := IssueToken(otherCfg, "a@b.com", types.TokenTypeAccess, cfg.AccessTokenTTL)
		require.NoError(t, err)

		_, err = ParseToken(cfg, token, types.TokenTypeAccess)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		_, err := ParseToken(cfg, "not.a.jwt", types.TokenTypeAccess)
		assert.Error(t, err)
	})
}
