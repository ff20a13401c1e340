package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pawlig/go-dog-registry/config"
	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var ErrWrongTokenType = errors.New("wrong token type")

// IssueToken mints a signed, self-contained bearer token for the given
// subject. No server-side state is created; the token stays valid until
// its expiry regardless of what happens to the subject afterwards.
func IssueToken(jwtCfg config.JWTConfig, subject string, tokenType types.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := types.Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{jwtCfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtCfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates signature, expiry, issuer, audience and token
// type, and returns the claims. Any failure means the bearer is not
// authorized.
func ParseToken(jwtCfg config.JWTConfig, tokenString string, want types.TokenType) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtCfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	if claims.ExpiresAt == nil || time.Now().Unix() > claims.ExpiresAt.Unix() {
		return nil, jwt.ErrTokenExpired
	}
	if claims.Issuer != jwtCfg.Issuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	if jwtCfg.Audience != "" && !api.VerifyAudience(claims.Audience, jwtCfg.Audience) {
		return nil, jwt.ErrTokenInvalidAudience
	}
	if claims.TokenType != want {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
