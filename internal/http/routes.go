package httpx

import (
	"log/slog"
	"net/http"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/observability/metrics"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Guard GuardInterface
	Store ports.CredentialStore
	API   ports.MemberAPI

	// MetricsHandler serves /metrics (promhttp). Optional.
	MetricsHandler http.Handler
	GuardMetrics   metrics.GuardRecorder

	CookieDomain string
	CookieSecure bool
	LoginLimiter *LoginLimiter
	Logger       *slog.Logger
}

// NewRouter creates and configures the gateway's HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		API:          services.API,
		Store:        services.Store,
		CookieDomain: services.CookieDomain,
		CookieSecure: services.CookieSecure,
		Metrics:      services.GuardMetrics,
		Logger:       logger,
	}
	viewHandlers := &ViewHandlers{
		Guard:  services.Guard,
		Store:  services.Store,
		Logger: logger,
	}

	login := http.Handler(http.HandlerFunc(authHandlers.Login))
	if services.LoginLimiter != nil {
		login = services.LoginLimiter.Middleware()(login)
	}
	mux.Handle("POST /auth/login", login)
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))

	mux.Handle("GET /member/dashboard", viewHandlers.Protected(session.RoleMember))
	mux.Handle("GET /clerk/dashboard", viewHandlers.Protected(session.RoleClerk))
	mux.Handle("GET /admin/dashboard", viewHandlers.Protected(session.RoleAdmin))
	mux.Handle("GET /session", http.HandlerFunc(viewHandlers.Session))

	mux.Handle("GET /login", http.HandlerFunc(loginPageHandler))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.MetricsHandler != nil {
		mux.Handle("GET /metrics", services.MetricsHandler)
	}

	return Recover(logger)(Logging(logger)(mux))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loginPageHandler is the redirect target for cleared sessions. The SPA
// serves the real login form; the gateway answers with enough for API
// clients to know they must re-authenticate.
func loginPageHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "authentication required, sign in to continue",
	})
}
