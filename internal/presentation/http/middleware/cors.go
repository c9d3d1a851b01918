package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/config"
)

// CORSMiddleware creates a CORS middleware with the provided configuration.
// The register UI runs in a browser on the till, so the register and
// idempotency headers must always be allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
			"Origin",
		}
	}
	for _, required := range []string{RegisterIDHeader, IdempotencyKeyHeader} {
		found := false
		for _, h := range corsConfig.AllowHeaders {
			if h == required {
				found = true
				break
			}
		}
		if !found {
			corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, required)
		}
	}

	return cors.New(corsConfig)
}
