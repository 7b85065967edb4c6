package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopora/backend/internal/interfaces/http/middleware"
)

// AdminRouteRegistrar is implemented by handlers that expose admin endpoints
type AdminRouteRegistrar interface {
	RegisterAdminRoutes(rg *gin.RouterGroup)
}

// AdminRouter mounts admin endpoints under /admin behind the admin role check
type AdminRouter struct {
	registrars []AdminRouteRegistrar
}

// NewAdminRouter creates an AdminRouter over the given handlers
func NewAdminRouter(registrars ...AdminRouteRegistrar) *AdminRouter {
	return &AdminRouter{registrars: registrars}
}

// RegisterRoutes registers the /admin group on the API group
func (a *AdminRouter) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	for _, registrar := range a.registrars {
		registrar.RegisterAdminRoutes(admin)
	}
}
