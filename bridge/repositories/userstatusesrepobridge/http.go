// Package userstatusesrepobridge contains HTTP route registration for
// UserStatus.
package userstatusesrepobridge

import (
	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/logger"
)

// Config holds configuration for the UserStatus bridge
type Config struct {
	Log        *logger.Logger
	Repository *userstatusesrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for UserStatus
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/user-statuses", b.httpList, cfg.Middleware...)
	group.POST("/user-statuses", b.httpCreate, cfg.Middleware...)
	group.GET("/user-statuses/{id}", b.httpGetByID, cfg.Middleware...)
	group.PUT("/user-statuses/{id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/user-statuses/{id}", b.httpDelete, cfg.Middleware...)
}
