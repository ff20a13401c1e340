package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pawlig/go-dog-registry/internal/api/auth"
	"github.com/pawlig/go-dog-registry/internal/api/dog"
	"github.com/pawlig/go-dog-registry/internal/api/user"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler *auth.HandlerImpl
	UserHandler *user.HandlerImpl
	DogHandler  *dog.HandlerImpl

	// AccessGuard validates access tokens, RefreshGuard refresh tokens.
	AccessGuard  func(http.Handler) http.Handler
	RefreshGuard func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to
// be applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	// Public routes: user CRUD, login. No token required.
	r.Group(func(r chi.Router) {
		r.Get("/user", cfg.UserHandler.GetAllUsers)
		r.Post("/user", cfg.UserHandler.CreateUser)
		r.Get("/user/{userID}", cfg.UserHandler.GetUser)
		r.Delete("/user/{userID}", cfg.UserHandler.DeleteUser)

		r.Post("/login", cfg.AuthHandler.Login)
	})

	// Refresh flow: guarded by the refresh-token guard only.
	r.Group(func(r chi.Router) {
		r.Use(cfg.RefreshGuard)
		r.Post("/refresh", cfg.AuthHandler.RefreshSession)
	})

	// Resource routes: every dog operation requires an access token.
	r.Group(func(r chi.Router) {
		r.Use(cfg.AccessGuard)

		r.Get("/dog", cfg.DogHandler.GetAllDogs)
		r.Post("/dog", cfg.DogHandler.CreateDog)
		r.Get("/dog/{dogID}", cfg.DogHandler.GetDog)
		r.Delete("/dog/{dogID}", cfg.DogHandler.DeleteDog)
	})

	return r
}
