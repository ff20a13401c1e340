package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pawlig/go-dog-registry/app/observability/metrics"
	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshSession(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewHandlerImpl(authService AuthService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary      Log in
// @Description  Verifies email/password and returns access and refresh tokens.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200 {object} types.LoginResponse "Tokens"
// @Failure      401 {object} types.LoginFailedResponse "Bad credentials"
// @Router       /login [post]
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))
	start := time.Now()

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid login request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	accessToken, refreshToken, err := h.authService.Login(ctx, req.Email, req.Password)

	m := metrics.Get()
	m.LoginRequestsTotal.Add(ctx, 1)
	m.LoginDurationSeconds.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, types.ErrUnauthenticated) {
			l.WarnContext(ctx, "Login failed", slog.String("email", req.Email))
			api.WriteJSONResponse(w, r, http.StatusUnauthorized, types.LoginFailedResponse{Msg: "Bad username or password"})
			return
		}
		l.ErrorContext(ctx, "Login error", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to log in")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshSession godoc
// @Summary      Refresh access token
// @Description  Mints a new access token from a valid refresh token.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} types.RefreshResponse "New access token"
// @Failure      401 {object} types.MessageResponse "Unauthorized"
// @Security     BearerAuth
// @Router       /refresh [post]
func (h *HandlerImpl) RefreshSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "RefreshSession"))

	// The refresh-token guard already validated the bearer and put the
	// subject on the context. The old refresh token is neither rotated
	// nor invalidated; it stays usable until its natural expiry.
	subject, ok := GetSubjectFromContext(ctx)
	if !ok || subject == "" {
		l.ErrorContext(ctx, "Subject not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	accessToken, err := h.authService.IssueAccessToken(ctx, subject)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue access token", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	metrics.Get().TokenRefreshesTotal.Add(ctx, 1)

	api.WriteJSONResponse(w, r, http.StatusOK, types.RefreshResponse{AccessToken: accessToken})
}
