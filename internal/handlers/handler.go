package handlers

import (
	"useradmin/internal/logger"
	"useradmin/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints (logout tolerates a missing token, so no middleware)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)

	// Protected user CRUD + session count
	h.registerUserRoutes(router)

	// Active-session push for the admin navbar — same port
	router.GET("/ws", h.wsSessions)

	// Embedded single-page admin UI
	h.registerStaticRoutes(router)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users", h.verifyTokenMiddleware)
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}

	r.GET("/active-tokens/count", h.verifyTokenMiddleware, h.activeTokenCount)
}
