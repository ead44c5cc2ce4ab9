package test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/service"
)

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockSetup      func(*MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Успешная регистрация",
			body: map[string]interface{}{"username": "alice", "email": "Alice@Example.com", "password": "password123"},
			mockSetup: func(auth *MockAuthService) {
				auth.On("Register", mockAnyCtx, repository.CreateUserRequest{
					Username: "alice",
					Email:    "alice@example.com",
					Password: "password123",
				}).Return(&models.User{UserID: "user-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Имя пользователя уже занято",
			body: map[string]interface{}{"username": "alice", "email": "other@example.com", "password": "password123"},
			mockSetup: func(auth *MockAuthService) {
				auth.On("Register", mockAnyCtx, mock.Anything).
					Return(nil, fmt.Errorf("%w: имя пользователя или email уже заняты", service.ErrConflict))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "уже заняты",
		},
		{
			name:           "Неверный email",
			body:           map[string]interface{}{"username": "alice", "email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "email",
		},
		{
			name:           "Username похож на email",
			body:           map[string]interface{}{"username": "bob@example.com", "email": "alice@example.com", "password": "password123"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "username (excludes)",
		},
		{
			name:           "Короткий пароль",
			body:           map[string]interface{}{"username": "alice", "email": "alice@example.com", "password": "123"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "password",
		},
		{
			name:           "Неизвестная роль",
			body:           map[string]interface{}{"username": "alice", "email": "alice@example.com", "password": "password123", "role": "Author"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "role",
		},
		{
			name:           "Нет username",
			body:           map[string]interface{}{"email": "alice@example.com", "password": "password123"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := createTestHandler()
			if tt.mockSetup != nil {
				tt.mockSetup(m.auth)
			}

			rr := httptest.NewRecorder()
			handler.Register(rr, newRequest(http.MethodPost, "/auth/register", tt.body, nil, nil))

			if tt.expectedError != "" {
				assertJSONError(t, rr, tt.expectedStatus, tt.expectedError)
			} else {
				assert.Equal(t, tt.expectedStatus, rr.Code)
				assert.NotContains(t, rr.Body.String(), "password")
			}
			m.auth.AssertExpectations(t)
		})
	}
}

func TestRegisterHandler_MalformedJSON(t *testing.T) {
	handler, _ := createTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{invalid json"))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assertJSONError(t, rr, http.StatusUnprocessableEntity, "Неверный формат запроса")
}

func TestLoginHandler(t *testing.T) {
	tokens := &service.TokenPair{AccessToken: "access-token-123", RefreshToken: "refresh-token-123", TokenType: "bearer"}

	t.Run("Вход по JSON", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("Login", mockAnyCtx, "alice@example.com", "password123").Return(tokens, nil)

		body := map[string]string{"usernameOrEmail": "alice@example.com", "password": "password123"}
		rr := httptest.NewRecorder()
		handler.Login(rr, newRequest(http.MethodPost, "/auth/login", body, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"accessToken":"access-token-123","refreshToken":"refresh-token-123","tokenType":"bearer"}`, rr.Body.String())
	})

	t.Run("Вход через форму", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("Login", mockAnyCtx, "alice", "password123").Return(tokens, nil)

		form := url.Values{"username": {"alice"}, "password": {"password123"}}
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		handler.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		m.auth.AssertExpectations(t)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("Login", mockAnyCtx, "alice", "wrong").
			Return(nil, fmt.Errorf("%w: неверное имя пользователя или пароль", service.ErrUnauthorized))

		body := map[string]string{"username": "alice", "password": "wrong"}
		rr := httptest.NewRecorder()
		handler.Login(rr, newRequest(http.MethodPost, "/auth/login", body, nil, nil))

		assertJSONError(t, rr, http.StatusUnauthorized, "неверное имя пользователя или пароль")
	})

	t.Run("Нет пароля", func(t *testing.T) {
		handler, m := createTestHandler()

		body := map[string]string{"username": "alice"}
		rr := httptest.NewRecorder()
		handler.Login(rr, newRequest(http.MethodPost, "/auth/login", body, nil, nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		m.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMeHandler(t *testing.T) {
	handler, m := createTestHandler()
	m.auth.On("CurrentUser", mockAnyCtx, "user-1").Return(&models.User{UserID: "user-1", Username: "alice"}, nil)

	rr := httptest.NewRecorder()
	handler.Me(rr, newRequest(http.MethodGet, "/auth/me", nil, nil, testClaims("user-1", models.RoleUser)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"alice"`)
}

func TestLogoutHandler(t *testing.T) {
	claims := testClaims("user-1", models.RoleUser)

	t.Run("Сессия отозвана", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("Logout", mockAnyCtx, claims).Return(true, nil)

		rr := httptest.NewRecorder()
		handler.Logout(rr, newRequest(http.MethodPost, "/auth/logout", nil, nil, claims))

		assertJSONMessage(t, rr, "Вы вышли из системы")
	})

	t.Run("Активной сессии нет", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("Logout", mockAnyCtx, claims).Return(false, nil)

		rr := httptest.NewRecorder()
		handler.Logout(rr, newRequest(http.MethodPost, "/auth/logout", nil, nil, claims))

		assertJSONMessage(t, rr, "Активная сессия не найдена")
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	tokens := &service.TokenPair{AccessToken: "new-access", RefreshToken: "refresh-token-123", TokenType: "bearer"}

	t.Run("По access токену", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("RefreshAccessToken", mockAnyCtx, "user-1").Return(tokens, nil)

		req := newRequest(http.MethodPost, "/auth/refresh", nil, nil, testClaims("user-1", models.RoleUser))
		rr := httptest.NewRecorder()

		handler.RefreshToken(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "new-access")
	})

	t.Run("По refresh токену в теле", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("RefreshWithToken", mockAnyCtx, "refresh-token-123").Return(tokens, nil)

		body := map[string]string{"refreshToken": "refresh-token-123"}
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, newRequest(http.MethodPost, "/auth/refresh", body, nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		m.auth.AssertNotCalled(t, "RefreshAccessToken", mock.Anything, mock.Anything)
	})

	t.Run("Сессия истекла", func(t *testing.T) {
		handler, m := createTestHandler()
		m.auth.On("RefreshAccessToken", mockAnyCtx, "user-1").
			Return(nil, fmt.Errorf("%w: сессия истекла, войдите заново", service.ErrUnauthorized))

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, newRequest(http.MethodPost, "/auth/refresh", nil, nil, testClaims("user-1", models.RoleUser)))

		assertJSONError(t, rr, http.StatusUnauthorized, "сессия истекла")
	})

	t.Run("Нет ни токена, ни сессии", func(t *testing.T) {
		handler, _ := createTestHandler()

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, newRequest(http.MethodPost, "/auth/refresh", nil, nil, nil))

		assertJSONError(t, rr, http.StatusUnauthorized, "Требуется аутентификация")
	})
}
