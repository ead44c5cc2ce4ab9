package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"socialnet/internal/repository"
	"socialnet/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludes=@"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Username        string `json:"username"`
	Password        string `json:"password"`
}

func (req LoginRequest) identifier() string {
	if req.UsernameOrEmail != "" {
		return req.UsernameOrEmail
	}
	return req.Username
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	// creating a form to create user
	serviceReq := repository.CreateUserRequest{
		Username: req.Username,
		Email:    strings.ToLower(req.Email),
		Password: req.Password,
		Role:     req.Role,
	}

	user, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusCreated)
}

// Login accepts either a JSON body or a urlencoded/multipart form with
// username and password fields.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readLoginRequest(w, r)
	if !ok {
		return
	}

	if req.identifier() == "" || req.Password == "" {
		WriteError(w, "Укажите имя пользователя или email и пароль", http.StatusUnprocessableEntity)
		return
	}

	tokens, err := h.AuthService.Login(r.Context(), req.identifier(), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, tokens, http.StatusOK)
}

func readLoginRequest(w http.ResponseWriter, r *http.Request) (LoginRequest, bool) {
	var req LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			WriteError(w, "Неверный формат формы", http.StatusUnprocessableEntity)
			return req, false
		}
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	default:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusUnprocessableEntity)
			return req, false
		}
	}

	return req, true
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	revoked, err := h.AuthService.Logout(r.Context(), claims)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if !revoked {
		writeMessage(w, "Активная сессия не найдена")
		return
	}

	writeMessage(w, "Вы вышли из системы")
}

// RefreshToken issues a new access token. The caller is identified by a
// refreshToken in the body or, when the body has none, by the Bearer token.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, "Неверный формат запроса", http.StatusUnprocessableEntity)
		return
	}

	var (
		tokens *service.TokenPair
		err    error
	)

	if req.RefreshToken != "" {
		tokens, err = h.AuthService.RefreshWithToken(r.Context(), req.RefreshToken)
	} else {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}
		tokens, err = h.AuthService.RefreshAccessToken(r.Context(), claims.UserID)
	}

	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, tokens, http.StatusOK)
}
