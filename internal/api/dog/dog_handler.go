package dog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/api/auth"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetAllDogs(w http.ResponseWriter, r *http.Request)
	GetDog(w http.ResponseWriter, r *http.Request)
	CreateDog(w http.ResponseWriter, r *http.Request)
	DeleteDog(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	dogService DogService
	logger     *slog.Logger
}

func NewHandlerImpl(dogService DogService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		dogService: dogService,
		logger:     logger,
	}
}

// requestLogger tags the handler log line with the authenticated
// subject the guard put on the context.
func (h *HandlerImpl) requestLogger(r *http.Request, handler string) *slog.Logger {
	l := h.logger.With(slog.String("handler", handler))
	if subject, ok := auth.GetSubjectFromContext(r.Context()); ok {
		l = l.With(slog.String("subject", subject))
	}
	return l
}

// GetAllDogs godoc
// @Summary      List dogs
// @Tags         Dog
// @Produce      json
// @Success      200 {object} types.DogsResponse "Dogs"
// @Failure      401 {object} types.MessageResponse "Unauthorized"
// @Security     BearerAuth
// @Router       /dog [get]
func (h *HandlerImpl) GetAllDogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.requestLogger(r, "GetAllDogs")

	dogs, err := h.dogService.GetAllDogs(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list dogs", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve dogs")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.DogsResponse{Dogs: dogs})
}

// GetDog godoc
// @Summary      Get dog by id
// @Tags         Dog
// @Produce      json
// @Success      200 {object} types.SingleDogResponse "Dog"
// @Failure      404 {object} types.MessageResponse "No dog found!"
// @Security     BearerAuth
// @Router       /dog/{dogID} [get]
func (h *HandlerImpl) GetDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.requestLogger(r, "GetDog")

	id, err := strconv.Atoi(chi.URLParam(r, "dogID"))
	if err != nil {
		api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No dog found!"})
		return
	}

	d, err := h.dogService.GetDog(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No dog found!"})
			return
		}
		l.ErrorContext(ctx, "Failed to get dog", slog.Int("id", id), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve dog")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.SingleDogResponse{Dog: *d})
}

// CreateDog godoc
// @Summary      Create dog
// @Tags         Dog
// @Accept       json
// @Produce      json
// @Success      201 {object} types.MessageResponse "New dog created!"
// @Failure      400 {object} types.MessageResponse "Missing fields!"
// @Failure      401 {object} types.MessageResponse "Unauthorized"
// @Security     BearerAuth
// @Router       /dog [post]
func (h *HandlerImpl) CreateDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.requestLogger(r, "CreateDog")

	var req types.CreateDogRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid create dog request body", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusBadRequest, types.MessageResponse{Message: "Missing fields!"})
		return
	}
	if req.Name == nil || req.Age == nil {
		api.WriteJSONResponse(w, r, http.StatusBadRequest, types.MessageResponse{Message: "Missing fields!"})
		return
	}

	if err := h.dogService.CreateDog(ctx, *req.Name, *req.Age); err != nil {
		l.ErrorContext(ctx, "Failed to create dog", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create dog")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, types.MessageResponse{Message: "New dog created!"})
}

// DeleteDog godoc
// @Summary      Delete dog by id
// @Tags         Dog
// @Produce      json
// @Success      200 {object} types.MessageResponse "The dog has been deleted!"
// @Failure      404 {object} types.MessageResponse "No dog found!"
// @Security     BearerAuth
// @Router       /dog/{dogID} [delete]
func (h *HandlerImpl) DeleteDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.requestLogger(r, "DeleteDog")

	id, err := strconv.Atoi(chi.URLParam(r, "dogID"))
	if err != nil {
		api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No dog found!"})
		return
	}

	if err := h.dogService.DeleteDog(ctx, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.WriteJSONResponse(w, r, http.StatusNotFound, types.MessageResponse{Message: "No dog found!"})
			return
		}
		l.ErrorContext(ctx, "Failed to delete dog", slog.Int("id", id), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete dog")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "The dog has been deleted!"})
}
