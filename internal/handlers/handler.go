package handlers

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"poolpump/internal/logger"
	"poolpump/internal/service"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	staticDir string
}

const defaultStaticDir = "static"

// NewHandler constructs a new HTTP handler with dependencies. staticDir is
// where the prebuilt dashboard lives; empty means "static".
func NewHandler(services *service.Service, log *logger.Logger, staticDir string) *Handler {
	if staticDir == "" {
		staticDir = defaultStaticDir
	}
	return &Handler{services: services, log: log, staticDir: staticDir}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Dashboard
	router.StaticFile("/", filepath.Join(h.staticDir, "index.html"))
	router.Static("/static", h.staticDir)

	// Health endpoint
	router.GET("/health", h.health)

	// Pump control surface (open, matches the device's local panel)
	router.GET("/status", h.getStatus)
	router.GET("/config", h.getConfig)
	router.POST("/run", h.runPump)
	router.POST("/stop", h.stopPump)
	router.POST("/control", h.controlPump)
	router.POST("/program", h.controlProgram)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Audit log (protected)
	api := router.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/logs", h.getLogs)
	}

	// Live status stream (HTTP upgrade) on the same port
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
