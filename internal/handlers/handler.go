package handlers

import (
	"heater_control/internal/controller"
	"heater_control/internal/logger"
	"heater_control/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	cfg      controller.Config
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. cfg is the
// immutable control-law configuration, exposed read-only.
func NewHandler(services *service.Service, cfg controller.Config, log *logger.Logger) *Handler {
	return &Handler{services: services, cfg: cfg, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket state stream (HTTP upgrade, same port)
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerHeaterRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerHeaterRoutes(api *gin.RouterGroup) {
	heater := api.Group("/heater")
	{
		heater.POST("/start", h.startLoop)
		heater.POST("/stop", h.stopLoop)
		heater.GET("/state", h.getState)
		heater.GET("/config", h.getConfig)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
