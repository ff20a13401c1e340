package user

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pawlig/go-dog-registry/app/observability/metrics"
	"github.com/pawlig/go-dog-registry/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

// MockUserService is a mock implementation of the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetAllUsers(ctx context.Context) ([]types.UserResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.UserResponse), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int) (*types.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserResponse), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// serveWithParam routes the request through chi so URLParam resolves.
func serveWithParam(handler http.HandlerFunc, method, pattern, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestGetAllUsersHandler(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandlerImpl(mockService, slog.Default())

	t.Run("Success", func(t *testing.T) {
		mockService.On("GetAllUsers", mock.Anything).
			Return([]types.UserResponse{{ID: 1, Email: "a@b.com"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		w := httptest.NewRecorder()

		handler.GetAllUsers(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"users":[{"id":1,"email":"a@b.com"}]}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("EmptyStore", func(t *testing.T) {
		mockService.On("GetAllUsers", mock.Anything).
			Return([]types.UserResponse{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		w := httptest.NewRecorder()

		handler.GetAllUsers(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"users":[]}`, w.Body.String())
		mockService.AssertExpectations(t)
	})
}

func TestGetUserHandler(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandlerImpl(mockService, slog.Default())

	t.Run("Found", func(t *testing.T) {
		mockService.On("GetUser", mock.Anything, 1).
			Return(&types.UserResponse{ID: 1, Email: "a@b.com"}, nil).Once()

		w := serveWithParam(handler.GetUser, http.MethodGet, "/user/{userID}", "/user/1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":{"id":1,"email":"a@b.com"}}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("GetUser", mock.Anything, 999).
			Return(nil, types.ErrNotFound).Once()

		w := serveWithParam(handler.GetUser, http.MethodGet, "/user/{userID}", "/user/999")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"No user found!"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("NonNumericID", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewHandlerImpl(mockService, slog.Default())
		w := serveWithParam(handler.GetUser, http.MethodGet, "/user/{userID}", "/user/abc")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"No user found!"}`, w.Body.String())
		mockService.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}

func TestCreateUserHandler(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandlerImpl(mockService, slog.Default())

	t.Run("Success", func(t *testing.T) {
		mockService.On("Register", mock.Anything, "a@b.com", "pw").Return(nil).Once()

		body, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "pw"})
		req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"New user created!"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewHandlerImpl(mockService, slog.Default())
		body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
		req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Missing fields!"}`, w.Body.String())
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})

	// Registering the same email twice: first succeeds, second conflicts.
	t.Run("DuplicateEmail", func(t *testing.T) {
		mockService.On("Register", mock.Anything, "a@b.com", "pw").Return(types.ErrConflict).Once()

		body, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "pw"})
		req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateUser(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"message":"Email already registered!"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandlerImpl(mockService, slog.Default())

	t.Run("Success", func(t *testing.T) {
		mockService.On("DeleteUser", mock.Anything, 1).Return(nil).Once()

		w := serveWithParam(handler.DeleteUser, http.MethodDelete, "/user/{userID}", "/user/1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"The user has been deleted!"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("DeleteUser", mock.Anything, 999).Return(types.ErrNotFound).Once()

		w := serveWithParam(handler.DeleteUser, http.MethodDelete, "/user/{userID}", "/user/999")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"No user found!"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})
}

func TestUserServiceRegisterHashesPassword(t *testing.T) {
	// The service must never hand the plaintext to the repository.
	mockRepo := new(mockUserRepo)
	service := NewUserService(mockRepo, slog.Default())

	mockRepo.On("CreateUser", mock.Anything, "a@b.com", mock.MatchedBy(func(hash string) bool {
		return hash != "pw" && len(hash) > 0
	})).Return(nil).Once()

	err := service.Register(context.Background(), "a@b.com", "pw")

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetAllUsers(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, email, passwordHash string) error {
	args := m.Called(ctx, email, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
