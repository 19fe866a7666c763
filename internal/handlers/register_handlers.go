package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/middleware"
	"github.com/ThreadBooks/thread_books_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 company-scoped groups. The
// caller identity header is mandatory on everything under the group;
// authorization itself happens upstream of this service.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.RequireCaller())

	company := v1.Group("/companies/:companyID")
	registerAccountRoutes(company, services.Account)
	registerPostingRoutes(company, services.Ledger)
	registerReportingRoutes(company, services.Reporting)
}
