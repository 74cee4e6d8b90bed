// internal/app/router.go
package app

import (
	"time"

	adminHandler "realty-service/internal/handlers/admin"
	assetHandler "realty-service/internal/handlers/asset"
	authHandler "realty-service/internal/handlers/auth"
	messageHandler "realty-service/internal/handlers/message"
	newsletterHandler "realty-service/internal/handlers/newsletter"
	propertyHandler "realty-service/internal/handlers/property"
	statsHandler "realty-service/internal/handlers/stats"
	wsHandler "realty-service/internal/handlers/websocket"
	"realty-service/internal/middleware"
	"realty-service/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler       *authHandler.AuthHandler
	AdminHandler      *adminHandler.AdminHandler
	PropertyHandler   *propertyHandler.PropertyHandler
	MessageHandler    *messageHandler.MessageHandler
	NewsletterHandler *newsletterHandler.NewsletterHandler
	StatsHandler      *statsHandler.StatsHandler
	AssetHandler      *assetHandler.AssetHandler
	WSHandler         *wsHandler.WebSocketHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Health            gin.HandlerFunc
}

// Limits are per client IP per minute.
type Limits struct {
	Limiter    ratelimit.Limiter
	Login      int
	PublicForm int
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers, limits Limits) {
	loginLimit := middleware.RateLimit(limits.Limiter,
		ratelimit.Rule{Scope: "login", Limit: limits.Login, Window: time.Minute}, logger)
	formLimit := middleware.RateLimit(limits.Limiter,
		ratelimit.Rule{Scope: "public_form", Limit: limits.PublicForm, Window: time.Minute}, logger)
	cms := h.AuthMiddleware.CMS()

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", h.Health)

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", loginLimit, h.AuthHandler.Login)
		auth.GET("/session", h.AuthMiddleware.Auth(), h.AuthHandler.Session)
	}

	// ==================== Public site ====================
	api.GET("/stats", h.StatsHandler.Get)
	api.POST("/messages", formLimit, h.MessageHandler.Create)
	api.POST("/newsletter", formLimit, h.NewsletterHandler.Subscribe)

	properties := api.Group("/properties")
	{
		properties.GET("", h.PropertyHandler.List)
		properties.GET("/:id", h.PropertyHandler.Get)

		// CMS
		properties.POST("", append(cms, h.PropertyHandler.Create)...)
		properties.PUT("/:id", append(cms, h.PropertyHandler.Update)...)
		properties.PATCH("/:id/active", append(cms, h.PropertyHandler.SetActive)...)
		properties.DELETE("/:id", append(cms, h.PropertyHandler.Delete)...)
	}

	// ==================== Admin bootstrap ====================
	api.POST("/admin/create", h.AdminHandler.CreateWithMasterKey)

	// ==================== Signed in (verification pending allowed) ====================
	account := api.Group("/admin")
	account.Use(h.AuthMiddleware.Auth())
	{
		account.POST("/verify", h.AdminHandler.Verify)
		account.POST("/verify/resend", h.AdminHandler.ResendCode)
		account.GET("/settings", h.AdminHandler.GetSettings)
		account.PUT("/settings", h.AdminHandler.UpdateSettings)
	}

	// ==================== CMS (verified only) ====================
	admin := api.Group("/admin")
	admin.Use(cms...)
	{
		admin.POST("/settings", h.AdminHandler.Create)
		admin.GET("/admins", h.AdminHandler.List)
		admin.POST("/admins", h.AdminHandler.Create)
		admin.DELETE("/admins/:id", h.AdminHandler.Delete)
		admin.GET("/logs", h.AdminHandler.Logs)

		admin.GET("/properties", h.PropertyHandler.AdminList)
		admin.GET("/properties/:id", h.PropertyHandler.AdminGet)

		admin.GET("/messages", h.MessageHandler.List)
		admin.DELETE("/messages/:id", h.MessageHandler.Delete)

		admin.POST("/assets/sign", h.AssetHandler.Sign)
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
