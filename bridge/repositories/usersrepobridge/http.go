// Package usersrepobridge contains HTTP route registration for User.
package usersrepobridge

import (
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/logger"
)

// Config holds configuration for the User bridge
type Config struct {
	Log        *logger.Logger
	Repository *usersrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for User
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	group.GET("/users", b.httpList, cfg.Middleware...)
	group.POST("/users", b.httpCreate, cfg.Middleware...)
	group.GET("/users/{id}", b.httpGetByID, cfg.Middleware...)
	group.PUT("/users/{id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/users/{id}", b.httpDelete, cfg.Middleware...)
}
