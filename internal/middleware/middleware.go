package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"

	handlers "socialnet/internal/handler"
	"socialnet/internal/models"
	"socialnet/internal/service"
)

const RequestIDHeader = "X-Request-ID"

type Middleware func(http.Handler) http.Handler

// AuthMiddleware resolves the caller from an "Authorization: Bearer" header.
// It never rejects a request by itself: routes that need a caller are
// wrapped with RequireAuth.
func AuthMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			// Checking the "Bearer <token>" format
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				ctx = handlers.WithAuthError(ctx, errInvalidHeader)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := authService.ValidateToken(ctx, parts[1])
			if err != nil {
				ctx = handlers.WithAuthError(ctx, err)
			} else {
				ctx = handlers.WithClaims(ctx, claims)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type authError string

func (e authError) Error() string { return string(e) }

const errInvalidHeader = authError("неверный формат токена")

// RequireAuth answers 401 unless AuthMiddleware accepted a token.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := handlers.ClaimsFromContext(r.Context()); !ok {
			if err := handlers.AuthErrorFromContext(r.Context()); err != nil {
				handlers.WriteError(w, err.Error(), http.StatusUnauthorized)
			} else {
				handlers.WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RoleMiddleware(allowedRoles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := handlers.ClaimsFromContext(r.Context())

			// Checking if the user's role is in the allowed list
			allowed := false
			for _, role := range allowedRoles {
				if claims.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				handlers.WriteError(w, "Доступ запрещен", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}

func AdminOnlyMiddleware(next http.Handler) http.Handler {
	return RoleMiddleware(models.RoleAdmin)(next)
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware tags every request with an id and logs it once the
// response is written.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = xid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("[%s] %s %s %d %s", requestID, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// Chain wraps h so that the first middleware runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
