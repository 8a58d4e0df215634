package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Elon7069/asha-didi-backend/internal/conversation"
	httpmiddleware "github.com/Elon7069/asha-didi-backend/internal/http/middleware"
	"github.com/Elon7069/asha-didi-backend/internal/risk"
	"github.com/Elon7069/asha-didi-backend/internal/visits"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *conversation.Handler
	VisitsHandler      *visits.Handler
	RiskHandler        *risk.Handler
	WebchatHandler     http.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/chat", func(r chi.Router) {
		r.Post("/message", cfg.ChatHandler.Message)
		r.Get("/history", cfg.ChatHandler.History)
		if cfg.WebchatHandler != nil {
			r.Handle("/ws", cfg.WebchatHandler)
		}
	})

	r.Route("/visits", func(r chi.Router) {
		r.Post("/extract", cfg.VisitsHandler.Extract)
		r.Get("/", cfg.VisitsHandler.List)
	})

	r.Post("/risk/assess", cfg.RiskHandler.Assess)

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
