package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pawlig/go-dog-registry/config"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login verifies credentials and returns access and refresh tokens
	Login(ctx context.Context, email, password string) (string, string, error)

	// ValidateCredentials checks an email/password pair against the
	// credential store. Unknown email and wrong password are both a
	// plain false.
	ValidateCredentials(ctx context.Context, email, password string) (bool, error)

	// IssueAccessToken mints a fresh access token for an already
	// authenticated subject (the refresh flow).
	IssueAccessToken(ctx context.Context, subject string) (string, error)
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	jwtCfg config.JWTConfig
}

// NewAuthService creates a new AuthService. The signing secret arrives
// here through config, never through a package global.
func NewAuthService(repo AuthRepo, jwtCfg config.JWTConfig, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		jwtCfg: jwtCfg,
	}
}

// ValidateCredentials fails closed: a missing user and a wrong password
// are indistinguishable in the returned bool.
func (s *AuthServiceImpl) ValidateCredentials(ctx context.Context, email, password string) (bool, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("validate credentials: %w", err)
	}

	ok, err := VerifyPassword(password, user.Password)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored password hash is unreadable", slog.String("email", email), slog.Any("error", err))
		return false, nil
	}
	return ok, nil
}

// Login verifies credentials and issues both token kinds. Tokens are
// stateless; nothing is persisted for them.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, string, error) {
	ok, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", types.ErrUnauthenticated
	}

	accessToken, err := IssueToken(s.jwtCfg, email, types.TokenTypeAccess, s.jwtCfg.AccessTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := IssueToken(s.jwtCfg, email, types.TokenTypeRefresh, s.jwtCfg.RefreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// IssueAccessToken mints a new access token for the subject of an
// already validated refresh token. The subject's continued existence is
// deliberately not re-checked.
func (s *AuthServiceImpl) IssueAccessToken(ctx context.Context, subject string) (string, error) {
	accessToken, err := IssueToken(s.jwtCfg, subject, types.TokenTypeAccess, s.jwtCfg.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}
