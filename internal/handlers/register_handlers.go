package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	portssvc "github.com/vicdotun/payvault/internal/core/ports/services"
	"github.com/vicdotun/payvault/internal/middleware"
	"github.com/vicdotun/payvault/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container. The Redis client is optional; without it the
// settlement routes run without HTTP-layer idempotency (the database status
// check still guards at-most-once settlement).
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	redisClient *redis.Client,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, services)

	setupAPIV1Routes(r, cfg, services, redisClient)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	redisClient *redis.Client,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	var idempotency gin.HandlerFunc
	if redisClient != nil {
		idempotency = middleware.Idempotency(redisClient)
	}

	registerUserRoutes(v1, services.User)
	registerCurrencyRoutes(v1, services.Currency)
	registerBankRoutes(v1, services.Bank)
	registerBankAccountRoutes(v1, services.BankAccount)
	registerPaymentMethodRoutes(v1, services.PaymentMethod)
	RegisterTransactionRoutes(v1, services.Transaction, idempotency)
}
