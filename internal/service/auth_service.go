package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"socialnet/internal/cache"
	"socialnet/internal/config"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

const (
	tokenTypeAccess = "access"
	tokenTypeBearer = "bearer"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	Logout(ctx context.Context, claims *Claims) (bool, error)
	RefreshAccessToken(ctx context.Context, userID string) (*TokenPair, error)
	RefreshWithToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	blacklist cache.TokenBlacklist
	cfg       *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, blacklist cache.TokenBlacklist, cfg *config.Config) AuthService {
	if blacklist == nil {
		blacklist = cache.NopBlacklist{}
	}

	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		blacklist: blacklist,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: роль должна быть user или admin", ErrValidation)
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: имя пользователя или email уже заняты", ErrConflict)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: имя пользователя или email уже заняты", ErrConflict)
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	user, err := s.userRepo.VerifyPassword(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			return nil, fmt.Errorf("%w: неверное имя пользователя или пароль", ErrUnauthorized)
		}
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.UserID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().UTC().Add(s.cfg.RefreshTokenDuration),
	}

	if err := s.tokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		TokenType:    tokenTypeBearer,
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: user.UserID,
		Role:   user.Role,
		Type:   tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// ValidateToken checks signature, expiry, token type and the blacklist.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: срок действия токена истек", ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: недействительный токен", ErrUnauthorized)
	}

	if !token.Valid || claims.Type != tokenTypeAccess || claims.UserID == "" {
		return nil, fmt.Errorf("%w: недействительный токен", ErrUnauthorized)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Redis outage must not lock everybody out
		log.Printf("Не удалось проверить чёрный список токенов: %v", err)
	} else if revoked {
		return nil, fmt.Errorf("%w: токен отозван", ErrUnauthorized)
	}

	return claims, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: пользователь не найден", ErrUnauthorized)
		}
		return nil, err
	}

	return user, nil
}

// Logout revokes the caller's latest refresh token and blacklists the access
// token it was called with. It reports false when there was no session left.
func (s *authService) Logout(ctx context.Context, claims *Claims) (bool, error) {
	if claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
			log.Printf("Не удалось отозвать access token %s: %v", claims.ID, err)
		}
	}

	token, err := s.tokenRepo.GetLatestNotRevoked(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	err = s.tokenRepo.Revoke(ctx, token.TokenID, time.Now().UTC())
	if err != nil {
		// revoked concurrently by another logout
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// RefreshAccessToken issues a new access token while the user's latest
// refresh token is still active. The refresh token itself is not rotated.
func (s *authService) RefreshAccessToken(ctx context.Context, userID string) (*TokenPair, error) {
	token, err := s.tokenRepo.GetLatestNotRevoked(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: сессия истекла, войдите заново", ErrUnauthorized)
		}
		return nil, err
	}

	return s.issueForRefreshToken(ctx, token)
}

// RefreshWithToken does the same as RefreshAccessToken for a client that only
// holds the refresh token value.
func (s *authService) RefreshWithToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: недействительный refresh token", ErrUnauthorized)
		}
		return nil, err
	}

	latest, err := s.tokenRepo.GetLatestNotRevoked(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: сессия истекла, войдите заново", ErrUnauthorized)
		}
		return nil, err
	}

	if latest.TokenID != token.TokenID {
		return nil, fmt.Errorf("%w: refresh token заменен более новым", ErrUnauthorized)
	}

	return s.issueForRefreshToken(ctx, latest)
}

func (s *authService) issueForRefreshToken(ctx context.Context, token *models.RefreshToken) (*TokenPair, error) {
	if !token.Active(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: сессия истекла, войдите заново", ErrUnauthorized)
	}

	user, err := s.CurrentUser(ctx, token.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: token.Token,
		TokenType:    tokenTypeBearer,
	}, nil
}
