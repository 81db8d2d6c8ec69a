package handlers

import (
	"net/http"

	"github.com/ukydev/moto-maintenance/internal/middleware"
	"github.com/ukydev/moto-maintenance/internal/models"
)

// RouterConfig bundles what NewRouter wires together
type RouterConfig struct {
	Auth            *AuthHandler
	Maintenance     *MaintenanceHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimitMiddleware
	RateLimitMax    int
	RateLimitWindow int
}

// NewRouter builds the HTTP API
func NewRouter(cfg RouterConfig) http.Handler {
	perm := cfg.AuthMiddleware.RequirePermission
	mux := http.NewServeMux()

	mux.HandleFunc("/health", cfg.Maintenance.Health)
	mux.HandleFunc("/api/auth/login", cfg.Auth.Login)

	records := http.HandlerFunc(cfg.Maintenance.Records)
	mux.Handle("/api/maintenance", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := models.ActionViewMaintenance
		if r.Method == http.MethodPost {
			action = models.ActionAddMaintenance
		}
		perm(action)(records).ServeHTTP(w, r)
	}))
	mux.Handle("/api/maintenance/due", perm(models.ActionCheckMaintenance)(http.HandlerFunc(cfg.Maintenance.Due)))

	var handler http.Handler = cfg.AuthMiddleware.Authenticate(mux)
	if cfg.RateLimiter != nil {
		handler = cfg.RateLimiter.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow)(handler)
	}
	return middleware.RequestLogger(handler)
}
