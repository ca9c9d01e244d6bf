package middleware

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/cors"
)

// CORS restricts cross-origin reads of the operational endpoints to origins,
// or allows any origin without credentials when none are configured.
func CORS(origins []string, logger *log.Logger) func(http.Handler) http.Handler {
	if len(origins) > 0 {
		logger.Info("loaded CORS origins", "count", len(origins))
		return cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		})
	}

	logger.Warn("no CORS_ORIGINS set, allowing all origins (credentials disabled)")
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}
