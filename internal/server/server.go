package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coah80/getbot/internal/config"
	"github.com/coah80/getbot/internal/middleware"
)

type Options struct {
	Addr        string
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
	Logger      *log.Logger
	// Ready reports whether the Discord session is connected.
	Ready func() bool
}

// New builds the operational HTTP server: liveness at /health and Prometheus
// metrics at /metrics.
func New(opts Options) *http.Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	logger := opts.Logger.WithPrefix("http")
	started := time.Now()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(securityHeaders)
	r.Use(middleware.CORS(opts.CORSOrigins, logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ready := opts.Ready == nil || opts.Ready()
		status, code := "ok", http.StatusOK
		if !ready {
			status, code = "starting", http.StatusServiceUnavailable
		}
		respondJSON(w, code, map[string]interface{}{
			"status":  status,
			"version": config.Version,
			"uptime":  time.Since(started).Round(time.Second).String(),
		})
	})

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
