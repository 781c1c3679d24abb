// Package router contains routing setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"userhub/internal/delivery/http/middleware"
	"userhub/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Account management routes. Writes are open so new accounts can be
	// created; reads require a valid bearer token.
	accountGroup := e.Group("/accounts")
	{
		accountGroup.POST("", r.accountHandler.Create)
		accountGroup.PUT("/:id", r.accountHandler.Update)
		accountGroup.DELETE("/:id", r.accountHandler.Deactivate)
		accountGroup.GET("/:id", r.accountHandler.FindByID, r.authMiddleware.Authenticate)
		accountGroup.GET("", r.accountHandler.List, r.authMiddleware.Authenticate)
	}
}
