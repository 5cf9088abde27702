package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fedblog-backend/internal/shared/middleware"
	"fedblog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBlogRoutes(v1, c)
		setupFollowerRoutes(v1, c)
	}

	setupFederationRoutes(router, c)

	return router
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/setup", c.BlogHandler.Setup)
	v1.GET("/profile", c.BlogHandler.GetProfile)
	v1.POST("/profile", c.BlogHandler.UpdateProfile)
	v1.POST("/auth/login", c.BlogHandler.Login)
}

// ========================================
// FOLLOWER ROUTES (operator only)
// ========================================
func setupFollowerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/followers", middleware.Auth(c.JWTManager), c.FollowerHandler.List)
}

// ========================================
// FEDERATION ROUTES (spoken to by remote servers, not the operator)
// ========================================
func setupFederationRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/.well-known/webfinger", c.FederationHandler.WebFinger)

	users := router.Group("/users")
	{
		users.GET("/:handle", c.FederationHandler.Actor)
		users.POST("/:handle/inbox", c.FederationHandler.Inbox)
		users.GET("/:handle/followers", c.FederationHandler.Followers)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Store.Ping(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"redis":  err.Error(),
			})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.Config.App.Version,
		})
	}
}
