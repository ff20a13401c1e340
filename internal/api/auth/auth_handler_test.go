package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

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

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateCredentials(ctx context.Context, email, password string) (bool, error) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) IssueAccessToken(ctx context.Context, subject string) (string, error) {
	args := m.Called(ctx, subject)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	mockService := new(MockAuthService)
	logger := slog.Default()
	handler := NewHandlerImpl(mockService, logger)

	// Test case: successful login returns both tokens
	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(types.LoginRequest{Email: "a@b.com", Password: "pw"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		mockService.On("Login", mock.Anything, "a@b.com", "pw").
			Return("access-token", "refresh-token", nil).Once()

		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response types.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "access-token", response.AccessToken)
		assert.Equal(t, "refresh-token", response.RefreshToken)
		mockService.AssertExpectations(t)
	})

	// Test case: bad credentials return the fixed "msg" body
	t.Run("BadCredentials", func(t *testing.T) {
		body, _ := json.Marshal(types.LoginRequest{Email: "a@b.com", Password: "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		mockService.On("Login", mock.Anything, "a@b.com", "wrong").
			Return("", "", types.ErrUnauthenticated).Once()

		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"msg":"Bad username or password"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	// Test case: malformed body
	t.Run("BadBody", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRefreshSessionHandler(t *testing.T) {
	mockService := new(MockAuthService)
	logger := slog.Default()
	handler := NewHandlerImpl(mockService, logger)

	// Test case: guard-validated subject gets a fresh access token
	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		ctx := context.WithValue(req.Context(), SubjectKey, "a@b.com")
		req = req.WithContext(ctx)
		w := httptest.NewRecorder()

		mockService.On("IssueAccessToken", mock.Anything, "a@b.com").
			Return("new-access-token", nil).Once()

		handler.RefreshSession(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response types.RefreshResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "new-access-token", response.AccessToken)
		mockService.AssertExpectations(t)
	})

	// Test case: no subject on the context means the guard never ran
	t.Run("MissingSubject", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		w := httptest.NewRecorder()

		handler.RefreshSession(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "IssueAccessToken", mock.Anything, mock.Anything)
	})
}
