package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
)

// SessionService is the full auth surface the router needs: the session
// endpoints plus request authentication for the middleware. Implemented by
// service.AuthService.
type SessionService interface {
	AuthServiceInterface
	Authenticator
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     SessionService
	Users    UserServiceInterface
	Blogs    BlogServiceInterface
	Contacts ContactServiceInterface
	// DB answers the readiness probe. Optional.
	DB     Pinger
	Cookie CookieConfig
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Cookie: services.Cookie, Logger: services.Logger}
	userHandlers := &UserHandlers{Svc: services.Users, Logger: services.Logger}
	blogHandlers := &BlogHandlers{Svc: services.Blogs, Logger: services.Logger}
	contactHandlers := &ContactHandlers{Svc: services.Contacts, Logger: services.Logger}

	authed := RequireAuth(services.Auth)
	adminOnly := RequireRole(services.Auth, domainauth.RoleAdmin)

	registerAuthRoutes(mux, authHandlers)
	registerUserRoutes(mux, userHandlers, authed, adminOnly)
	registerBlogRoutes(mux, blogHandlers, authed, adminOnly)
	registerContactRoutes(mux, contactHandlers, adminOnly)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.DB))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/user/register", h.Register)
	mux.HandleFunc("POST /api/user/login", h.Login)
	// Logout reads the cookie itself and succeeds without one, so it needs
	// no auth wrapper.
	mux.HandleFunc("POST /api/user/logout", h.Logout)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, authed, adminOnly func(http.Handler) http.Handler) {
	mux.Handle("GET /api/user/me", authed(http.HandlerFunc(h.Me)))
	mux.Handle("PUT /api/user/me", authed(http.HandlerFunc(h.UpdateMe)))
	mux.Handle("GET /api/user/admins", adminOnly(http.HandlerFunc(h.Admins)))
}

func registerBlogRoutes(mux *http.ServeMux, h *BlogHandlers, authed, adminOnly func(http.Handler) http.Handler) {
	// Reading is public. Publishing is an admin capability; edits and
	// deletes additionally check ownership in the service layer.
	mux.HandleFunc("GET /api/blog", h.List)
	mux.HandleFunc("GET /api/blog/{id}", h.Get)
	mux.Handle("GET /api/blog/mine", authed(http.HandlerFunc(h.Mine)))
	mux.Handle("POST /api/blog", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/blog/{id}", authed(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/blog/{id}", authed(http.HandlerFunc(h.Delete)))
}

func registerContactRoutes(mux *http.ServeMux, h *ContactHandlers, adminOnly func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/contact", h.Submit)
	mux.Handle("GET /api/contact", adminOnly(http.HandlerFunc(h.List)))
}
