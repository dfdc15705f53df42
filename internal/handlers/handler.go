package handlers

import (
	"net/http"

	_ "heatman/docs"
	"heatman/internal/logger"
	"heatman/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options holds the optional parts of the HTTP surface.
type Options struct {
	// JWTSecret enables bearer-token verification on PATCH / when non-empty.
	JWTSecret string
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware, h.accessLogMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerHeaterRoutes(router)

	router.GET("/ws", h.wsConnect)

	if h.opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.opts.Metrics))
	}

	return router
}

func (h *Handler) registerHeaterRoutes(r *gin.Engine) {
	r.GET("/", h.getHeater)

	if h.opts.JWTSecret != "" {
		r.PATCH("/", h.bearerMiddleware, h.patchHeater)
		return
	}
	r.PATCH("/", h.patchHeater)
}
