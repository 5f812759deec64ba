package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/clinic-admin-service/internal/catalog"
	"github.com/maxviazov/clinic-admin-service/internal/service"
)

// NewRouter builds a gin engine with the standard middleware chain and all routes.
func NewRouter(logger zerolog.Logger, ready Pinger, svcs service.Services, defaultSize int) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), Recovery(logger))
	Register(r, ready, svcs, defaultSize)
	return r
}

// Register mounts all public routes on the given engine.
// defaultSize applies to GET list requests that omit size.
func Register(r *gin.Engine, ready Pinger, svcs service.Services, defaultSize int) {
	h := NewHealthHandler(ready)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewCatalogHandler(catalog.PatientsModule, svcs.Patients, defaultSize).Register(api)
		NewCatalogHandler(catalog.DoctorsModule, svcs.Doctors, defaultSize).Register(api)
		NewCatalogHandler(catalog.BranchesModule, svcs.Branches, defaultSize).Register(api)
		NewCatalogHandler(catalog.AppointmentsModule, svcs.Appointments, defaultSize).Register(api)
		NewCatalogHandler(catalog.ProductsModule, svcs.Products, defaultSize).Register(api)
		NewCatalogHandler(catalog.TransactionsModule, svcs.Transactions, defaultSize).Register(api)
	}
}
