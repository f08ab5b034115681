package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// NewRouter builds the gin engine with identity routes and, when gatherer is
// not nil, a /metrics endpoint.
func NewRouter(
	registration model.RegistrationService,
	authentication model.AuthenticationService,
	gatherer prometheus.Gatherer,
	logger *logger.Logger,
	timeout time.Duration,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), loggingMiddleware(logger), timeoutMiddleware(timeout))

	NewHandler(registration, authentication, logger).RegisterRoutes(router)

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return router
}
