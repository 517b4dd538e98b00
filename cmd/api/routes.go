package main

import (
	"notes-platform/internal/auth"
	"notes-platform/internal/config"
	"notes-platform/internal/notes"
	"notes-platform/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type apiDeps struct {
	cfg     config.Config
	redis   *redis.Client
	tokens  *auth.Manager
	cookies *auth.CookieManager
	auth    *auth.Service
	users   *users.Service
	notes   *notes.Service
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, d apiDeps) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Session lifecycle. Login sits behind the rate limiter; refresh and
	// logout are public because they run exactly when the access token is
	// gone or expired.
	authHandlers := auth.Handlers{Service: d.auth, Cookies: d.cookies}
	authGroup := r.Group("/auth")
	{
		limiter := auth.LoginLimiter(d.redis, d.cfg.Auth.LoginAttempts, d.cfg.Auth.LoginWindow)
		authGroup.POST("", limiter, authHandlers.Login)
		authGroup.GET("/refresh", authHandlers.Refresh)
		authGroup.POST("/logout", authHandlers.Logout)
	}

	requireAuth := auth.RequireAccessToken(d.tokens)

	// User administration: authenticated Managers/Admins only.
	userHandlers := users.Handlers{Service: d.users}
	userGroup := r.Group("/users")
	userGroup.Use(requireAuth, auth.RequireAnyRole("Manager", "Admin"))
	{
		userGroup.GET("", userHandlers.List)
		userGroup.POST("", userHandlers.Create)
		userGroup.PATCH("", userHandlers.Update)
		userGroup.DELETE("", userHandlers.Delete)
	}

	// Notes: any authenticated user.
	noteHandlers := notes.Handlers{Service: d.notes}
	noteGroup := r.Group("/notes")
	noteGroup.Use(requireAuth)
	{
		noteGroup.GET("", noteHandlers.List)
		noteGroup.POST("", noteHandlers.Create)
		noteGroup.PATCH("", noteHandlers.Update)
		noteGroup.DELETE("", noteHandlers.Delete)
	}
}
