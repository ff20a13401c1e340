package types

import "github.com/golang-jwt/jwt/v5"

// TokenType discriminates access tokens from refresh tokens inside the
// signed claims. A refresh token must never pass the access guard and
// vice versa.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the signed payload of both token kinds. Subject carries the
// authenticated email. Tokens are stateless bearer credentials: nothing
// is stored server-side and validity derives entirely from the
// signature and the registered expiry claim.
type Claims struct {
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// LoginFailedResponse uses "msg" rather than "message"; clients depend
// on that key for failed logins.
type LoginFailedResponse struct {
	Msg string `json:"msg"`
}
