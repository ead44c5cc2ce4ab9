package app

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	handlers "socialnet/internal/handler"
	"socialnet/internal/middleware"
	"socialnet/internal/service"
	"socialnet/internal/storage"
)

type routes struct {
	router *mux.Router
}

// handle registers the path both with and without a trailing slash.
func (rt routes) handle(method, path string, h http.Handler) {
	trimmed := strings.TrimSuffix(path, "/")
	rt.router.Handle(trimmed, h).Methods(method)
	rt.router.Handle(trimmed+"/", h).Methods(method)
}

func (rt routes) public(method, path string, h http.HandlerFunc) {
	rt.handle(method, path, h)
}

func (rt routes) private(method, path string, h http.HandlerFunc) {
	rt.handle(method, path, middleware.RequireAuth(h))
}

func (rt routes) admin(method, path string, h http.HandlerFunc) {
	rt.handle(method, path, middleware.AdminOnlyMiddleware(h))
}

// NewRouter builds the HTTP API. uploadDir is served under /uploads/ when
// images are kept on the local disk.
func NewRouter(h *handlers.Handlers, authService service.AuthService, uploadDir string) http.Handler {
	router := mux.NewRouter()
	rt := routes{router: router}

	rt.public(http.MethodGet, "/health", h.HealthHandler)
	rt.public(http.MethodGet, "/tables", h.TablesHandler)

	rt.public(http.MethodPost, "/auth/register", h.Register)
	rt.public(http.MethodPost, "/auth/login", h.Login)
	rt.public(http.MethodPost, "/auth/refresh", h.RefreshToken)
	rt.private(http.MethodGet, "/auth/me", h.Me)
	rt.private(http.MethodPost, "/auth/logout", h.Logout)

	// fixed paths go before /users/{username}
	rt.admin(http.MethodGet, "/users/admin/users", h.ListUsers)
	rt.private(http.MethodPatch, "/users/me", h.UpdateProfile)
	rt.public(http.MethodGet, "/users/{username}", h.GetProfile)
	rt.private(http.MethodPost, "/users/{username}/follow", h.Follow)
	rt.private(http.MethodDelete, "/users/{username}/unfollow", h.Unfollow)
	rt.public(http.MethodGet, "/users/{username}/followers", h.ListFollowers)
	rt.public(http.MethodGet, "/users/{username}/following", h.ListFollowing)

	rt.private(http.MethodPost, "/posts", h.CreatePost)
	rt.public(http.MethodGet, "/posts", h.ListPosts)
	rt.public(http.MethodGet, "/posts/{id}", h.GetPost)
	rt.private(http.MethodPatch, "/posts/{id}", h.UpdatePost)
	rt.private(http.MethodDelete, "/posts/{id}", h.DeletePost)

	rt.private(http.MethodPost, "/posts/{post_id}/comments", h.CreateComment)
	rt.public(http.MethodGet, "/posts/{post_id}/comments", h.ListComments)
	rt.private(http.MethodDelete, "/comments/{id}", h.DeleteComment)

	rt.private(http.MethodPost, "/like/{post_id}/like", h.LikePost)
	rt.private(http.MethodDelete, "/like/{post_id}/like", h.UnlikePost)
	rt.public(http.MethodGet, "/like/{post_id}/likes", h.ListLikers)

	rt.private(http.MethodGet, "/feed", h.Feed)

	if uploadDir != "" {
		fileServer := http.StripPrefix(storage.LocalURLPrefix, http.FileServer(http.Dir(uploadDir)))
		router.PathPrefix(storage.LocalURLPrefix).Handler(fileServer).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Не найдено", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(authService),
	)
}
