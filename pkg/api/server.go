package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/edustack/platform/pkg/auth"
	"github.com/edustack/platform/pkg/httputil"
	"github.com/edustack/platform/pkg/middleware"
	"github.com/edustack/platform/pkg/observability"
	"github.com/edustack/platform/pkg/storage"
)

// UserDirectory extends the auth store contract with the administrative
// operations the API needs. *postgres.UserStore satisfies it.
type UserDirectory interface {
	auth.UserStore
	SetActive(ctx context.Context, id int64, active bool) error
	ListUsers(ctx context.Context, limit, offset int) ([]*auth.User, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// Options collects the server's collaborators
type Options struct {
	AuthService  *auth.Service
	Users        UserDirectory
	Store        storage.ObjectStore
	ListingCache *storage.ListingCache
	Health       *observability.HealthChecker
	Logger       *observability.Logger
	Metrics      *observability.Metrics
	CORSOrigins  []string
	MaxBodyBytes int64
	CookieSecure bool
	// MockBaseURL is the base for substitute download URLs when the
	// object store cannot sign one. Defaults to the storage mock base.
	MockBaseURL string
}

// Server is the HTTP API server
type Server struct {
	router       *mux.Router
	logger       *observability.Logger
	metrics      *observability.Metrics
	authSvc      *auth.Service
	authn        *middleware.Authenticator
	users        UserDirectory
	store        storage.ObjectStore
	listingCache *storage.ListingCache
	health       *observability.HealthChecker
	cookieSecure bool
	mockBase     string
}

// NewServer creates the API server and registers all routes
func NewServer(opts Options) *Server {
	mockBase := strings.TrimRight(opts.MockBaseURL, "/")
	if mockBase == "" {
		mockBase = strings.TrimRight(storage.DefaultConfig().MockBaseURL, "/")
	}
	s := &Server{
		router:       mux.NewRouter(),
		logger:       opts.Logger.WithField("component", "api"),
		metrics:      opts.Metrics,
		authSvc:      opts.AuthService,
		authn:        middleware.NewAuthenticator(opts.AuthService, opts.Logger, opts.Metrics),
		users:        opts.Users,
		store:        opts.Store,
		listingCache: opts.ListingCache,
		health:       opts.Health,
		cookieSecure: opts.CookieSecure,
		mockBase:     mockBase,
	}
	s.setupRoutes(opts)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes(opts Options) {
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	s.router.Use(
		httputil.RequestIDMiddleware,
		s.instrument,
		httputil.LoggingMiddleware(opts.Logger),
		httputil.RecoveryMiddleware(opts.Logger),
		httputil.CORSMiddleware(opts.CORSOrigins),
		httputil.MaxBytesMiddleware(maxBody),
	)

	s.router.HandleFunc("/", s.root).Methods("GET")

	if s.health != nil {
		s.router.HandleFunc("/health", s.health.Readiness).Methods("GET")
		s.router.HandleFunc("/health/live", s.health.Liveness).Methods("GET")
	}
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	// Auth endpoints
	authRouter := s.router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/signup", s.signup).Methods("POST")
	authRouter.HandleFunc("/login", s.login).Methods("POST")
	authRouter.HandleFunc("/refresh-token", s.refreshToken).Methods("POST")
	authRouter.HandleFunc("/logout", s.logout).Methods("POST")
	authRouter.Handle("/me", s.protect(http.HandlerFunc(s.me))).Methods("GET")

	// Protected resources
	s.router.Handle("/profile",
		s.protect(http.HandlerFunc(s.profile), auth.ScopeProfileRead)).Methods("GET")
	s.router.Handle("/materials",
		s.protect(http.HandlerFunc(s.listMaterials), auth.ScopeMaterialsRead)).Methods("GET")

	// Admin endpoints
	s.router.Handle("/api/users",
		s.protect(http.HandlerFunc(s.listUsers), auth.ScopeUsersRead)).Methods("GET")
	s.router.Handle("/api/users/{id}/active",
		s.protect(http.HandlerFunc(s.setUserActive), auth.ScopeUsersWrite)).Methods("PATCH")
}

func (s *Server) protect(h http.Handler, scopes ...auth.Scope) http.Handler {
	return s.authn.Middleware(scopes...)(h)
}

// instrument records request count and duration under the route template
// so path parameters do not explode metric cardinality
func (s *Server) instrument(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		s.metrics.InstrumentHandler(path, next).ServeHTTP(w, r)
	})
}

// root handles GET /
// root serves a small API index so a browser hitting the bare host sees
// something useful
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, APIIndex{
		App:     "EduStack Platform API",
		Version: Version,
		Endpoints: []EndpointInfo{
			{Path: "/api/auth/signup", Method: "POST", Description: "Register a new user"},
			{Path: "/api/auth/login", Method: "POST", Description: "Authenticate and receive tokens"},
			{Path: "/api/auth/refresh-token", Method: "POST", Description: "Rotate the token pair"},
			{Path: "/api/auth/logout", Method: "POST", Description: "Clear auth cookies"},
			{Path: "/api/auth/me", Method: "GET", Description: "Current user"},
			{Path: "/profile", Method: "GET", Description: "User profile"},
			{Path: "/materials", Method: "GET", Description: "List available learning materials"},
		},
	})
}
