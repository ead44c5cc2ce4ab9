package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "socialnet/internal/handler"
	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	panic("not used")
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (*service.TokenPair, error) {
	panic("not used")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, tokenString string) (*service.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	panic("not used")
}

func (m *mockAuthService) Logout(ctx context.Context, claims *service.Claims) (bool, error) {
	panic("not used")
}

func (m *mockAuthService) RefreshAccessToken(ctx context.Context, userID string) (*service.TokenPair, error) {
	panic("not used")
}

func (m *mockAuthService) RefreshWithToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	panic("not used")
}

// whoAmI echoes the caller resolved by the auth middleware.
var whoAmI = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	claims, ok := handlers.ClaimsFromContext(r.Context())
	if !ok {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(claims.UserID))
})

func TestAuthMiddleware(t *testing.T) {
	claims := &service.Claims{UserID: "user-1", Role: models.RoleUser}

	tests := []struct {
		name           string
		header         string
		mockSetup      func(*mockAuthService)
		protected      bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Публичный маршрут без токена",
			expectedStatus: http.StatusOK,
			expectedBody:   "anonymous",
		},
		{
			name:   "Валидный токен",
			header: "Bearer good",
			mockSetup: func(auth *mockAuthService) {
				auth.On("ValidateToken", mock.Anything, "good").Return(claims, nil)
			},
			protected:      true,
			expectedStatus: http.StatusOK,
			expectedBody:   "user-1",
		},
		{
			name:           "Защищенный маршрут без токена",
			protected:      true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Требуется аутентификация",
		},
		{
			name:           "Неверный формат заголовка",
			header:         "Token abc",
			protected:      true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "неверный формат токена",
		},
		{
			name:   "Просроченный токен",
			header: "Bearer expired",
			mockSetup: func(auth *mockAuthService) {
				auth.On("ValidateToken", mock.Anything, "expired").
					Return(nil, fmt.Errorf("%w: срок действия токена истек", service.ErrUnauthorized))
			},
			protected:      true,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "срок действия токена истек",
		},
		{
			name:   "Просроченный токен на публичном маршруте",
			header: "Bearer expired",
			mockSetup: func(auth *mockAuthService) {
				auth.On("ValidateToken", mock.Anything, "expired").
					Return(nil, fmt.Errorf("%w: срок действия токена истек", service.ErrUnauthorized))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mockAuthService)
			if tt.mockSetup != nil {
				tt.mockSetup(auth)
			}

			var next http.Handler = whoAmI
			if tt.protected {
				next = RequireAuth(next)
			}
			h := AuthMiddleware(auth)(next)

			req := httptest.NewRequest(http.MethodGet, "/feed/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			auth.AssertExpectations(t)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *service.Claims
		expectedStatus int
	}{
		{"Администратор", &service.Claims{UserID: "admin-id", Role: models.RoleAdmin}, http.StatusOK},
		{"Обычный пользователь", &service.Claims{UserID: "user-id", Role: models.RoleUser}, http.StatusForbidden},
		{"Аноним", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/admin/users", nil)
			if tt.claims != nil {
				req = req.WithContext(handlers.WithClaims(req.Context(), tt.claims))
			}
			rr := httptest.NewRecorder()

			AdminOnlyMiddleware(whoAmI).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/posts/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.False(t, called)
}

func TestLoggingMiddleware(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("Генерирует ID запроса", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Len(t, rr.Header().Get(RequestIDHeader), 20)
	})

	t.Run("Сохраняет ID клиента", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "client-id")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "client-id", rr.Header().Get(RequestIDHeader))
	})
}

func TestChain(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mark("first"), mark("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, order, 2)
	assert.Equal(t, []string{"first", "second"}, order)
}
