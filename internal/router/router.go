package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	mw "github.com/crier-dev/crier/internal/middleware"
	"github.com/crier-dev/crier/internal/setup"
)

// New creates and configures a new mux router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that subrouter
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(mw.RequestID)

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// setup CORS for browser clients (push subscription runs in a service worker)
	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{"http://localhost:8081"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	// JSON API only, no scripts/styles needed
	apiCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, apiCSP))

	r.Use(mw.Metrics)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Auth routes
	auth := v1.PathPrefix("/auth").Subrouter()

	// Registration (strict limits to slow account farming)
	authRegister := auth.NewRoute().Subrouter()
	authRegister.Use(mw.RateLimit(mw.NewRateLimiter(rate.Limit(1.0/10), 1, 1*time.Hour), mw.GetIP)) // 1 per 10s by IP
	authRegister.Use(mw.GlobalRateLimit(mw.NewRateLimiter(100, 100, 1*time.Hour)))                  // 100 global RPS
	authRegister.HandleFunc("/register", h.Register).Methods("POST")

	// Login endpoint (separate rate limiting)
	authLogin := auth.NewRoute().Subrouter()
	authLogin.Use(mw.RateLimit(mw.NewRateLimiter(1, 1, 1*time.Hour), mw.GetIP)) // 1 per second by IP
	authLogin.Use(mw.GlobalRateLimit(mw.NewRateLimiter(1000, 1000, 1*time.Hour)))
	authLogin.HandleFunc("/login", h.Login).Methods("POST")

	// Logout (no rate limits)
	auth.HandleFunc("/logout", h.Logout).Methods("POST")

	authAccount := auth.NewRoute().Subrouter()
	authAccount.Use(authMw.NeedAuth())
	authAccount.HandleFunc("/account", h.DeleteAccount).Methods("DELETE")

	// Read-only routes, viewer flags filled in when a token is present
	public := v1.NewRoute().Subrouter()
	public.Use(authMw.OptionalAuth())
	public.Use(mw.GlobalRateLimit(mw.NewRateLimiter(1000, 1000, 1*time.Hour)))
	public.HandleFunc("/boards", h.GetBoards).Methods("GET")
	public.HandleFunc("/boards/{board}", h.GetBoard).Methods("GET")
	public.HandleFunc("/boards/{board}/posts/{post}", h.GetPost).Methods("GET")

	// Logged-in user routes
	loggedIn := v1.NewRoute().Subrouter()
	loggedIn.Use(authMw.NeedAuth())
	loggedIn.Use(mw.RateLimit(mw.NewRateLimiter(100, 100, 1*time.Hour), mw.GetUserIDFromContext)) // 100 RPS per user

	loggedIn.HandleFunc("/boards", h.CreateBoard).Methods("POST")
	loggedIn.HandleFunc("/boards/my", h.GetUserBoards).Methods("GET")
	loggedIn.HandleFunc("/boards/{board}", h.DeleteBoard).Methods("DELETE")
	loggedIn.HandleFunc("/boards/{board}/subscribe", h.ToggleSubscription).Methods("POST")

	// CreatePost: 1 per 10s per user
	loggedIn.Handle("/boards/{board}/posts",
		mw.RateLimit(mw.NewRateLimiter(rate.Limit(1.0/10), 1, 1*time.Hour), mw.GetUserIDFromContext)(http.HandlerFunc(h.CreatePost))).Methods("POST")
	loggedIn.HandleFunc("/boards/{board}/posts/{post}", h.DeletePost).Methods("DELETE")

	// CreateComment: 1 per second per user
	loggedIn.Handle("/boards/{board}/posts/{post}/comments",
		mw.RateLimit(mw.NewRateLimiter(1, 1, 1*time.Hour), mw.GetUserIDFromContext)(http.HandlerFunc(h.CreateComment))).Methods("POST")
	loggedIn.HandleFunc("/boards/{board}/posts/{post}/comments/{comment}", h.DeleteComment).Methods("DELETE")

	loggedIn.HandleFunc("/boards/{board}/posts/{post}/vote", h.VotePost).Methods("POST")
	loggedIn.HandleFunc("/boards/{board}/posts/{post}/comments/{comment}/vote", h.VoteComment).Methods("POST")

	loggedIn.HandleFunc("/push/key", h.GetPushKey).Methods("GET")
	loggedIn.HandleFunc("/push/subscription", h.PushSubscription).Methods("POST")

	// Admin routes
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(authMw.AdminOnly())
	admin.HandleFunc("/push/test", h.PushTest).Methods("POST")
	admin.HandleFunc("/boards/{board}/purge", h.PurgeBoardPosts).Methods("POST")

	return r
}
