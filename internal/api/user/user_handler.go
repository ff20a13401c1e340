package user

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pawlig/go-dog-registry/app/observability/metrics"
	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetAllUsers(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// GetAllUsers godoc
// @Summary      List users
// @Description  Returns every registered user without password material.
// @Tags         User
// @Produce      json
// @Success      200 {object} types.UsersResponse "Users"
// @Router       /user [get]
func (h *HandlerImpl) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAllUsers"))

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.UsersResponse{Users: users})
}

// GetUser godoc
// @Summary      Get user by id
// @Tags         User
// @Produce      json
// @Success      200 {object} types.SingleUserResponse "User"
// @Failure      404 {object} types.MessageResponse "No user found!"
// @Router       /user/{userID} [get]
func (h *HandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetUser"))

	id, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		// Non-numeric ids match nothing.
		api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No user found!"})
		return
	}

	u, err := h.userService.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No user found!"})
			return
		}
		l.ErrorContext(ctx, "Failed to get user", slog.Int("id", id), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.SingleUserResponse{User: *u})
}

// CreateUser godoc
// @Summary      Register user
// @Description  Creates a new user from email and password.
// @Tags         User
// @Accept       json
// @Produce      json
// @Success      201 {object} types.MessageResponse "New user created!"
// @Failure      400 {object} types.MessageResponse "Missing fields!"
// @Failure      409 {object} types.MessageResponse "Email already registered!"
// @Router       /user [post]
func (h *HandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateUser"))

	var req types.CreateUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid register request body", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusBadRequest, types.MessageResponse{Message: "Missing fields!"})
		return
	}
	if req.Email == nil || req.Password == nil {
		api.WriteJSONResponse(w, r, http.StatusBadRequest, types.MessageResponse{Message: "Missing fields!"})
		return
	}

	err := h.userService.Register(ctx, *req.Email, *req.Password)

	metrics.Get().RegisterRequestsTotal.Add(ctx, 1)

	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			l.WarnContext(ctx, "Duplicate registration", slog.String("email", *req.Email))
			api.WriteJSONResponse(w, r, http.StatusConflict, types.MessageResponse{Message: "Email already registered!"})
			return
		}
		l.ErrorContext(ctx, "Failed to register user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, types.MessageResponse{Message: "New user created!"})
}

// DeleteUser godoc
// @Summary      Delete user by id
// @Tags         User
// @Produce      json
// @Success      200 {object} types.MessageResponse "The user has been deleted!"
// @Failure      404 {object} types.MessageResponse "No user found!"
// @Router       /user/{userID} [delete]
func (h *HandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteUser"))

	id, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No user found!"})
		return
	}

	if err := h.userService.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No user found!"})
			return
		}
		l.ErrorContext(ctx, "Failed to delete user", slog.Int("id", id), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	// Deleting a user does not invalidate tokens already issued to them.
	api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "The user has been deleted!"})
}
