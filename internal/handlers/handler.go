package handlers

import (
	"net/http"

	"tasktracker/internal/logger"
	"tasktracker/internal/service"

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
// The route surface mirrors the classic form-app layout: the login page
// lives at "/", everything task-related under "/task_list/" and "/tasks/".
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAccountRoutes(router)
	h.registerTaskRoutes(router)

	// Live task board feed (HTTP upgrade) — same port
	router.GET("/ws", h.wsBoard)

	return router
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) registerAccountRoutes(r *gin.Engine) {
	r.GET("/", h.loginPage)
	r.POST("/", h.signIn)

	r.GET("/register/", h.registerPage)
	r.POST("/register/", h.signUp)

	r.POST("/logout/", h.logout)

	r.GET("/home/", h.userIdentity, h.home)
	r.POST("/home/", h.userIdentity, h.home)
}

func (h *Handler) registerTaskRoutes(r *gin.Engine) {
	list := r.Group("/task_list", h.userIdentity)
	{
		list.GET("/", h.taskList)
		list.GET("/task_form/", h.taskFormPage)
		list.POST("/task_form/", h.createTask)
	}

	tasks := r.Group("/tasks", h.userIdentity)
	{
		tasks.POST("/:id/delete/", h.deleteTask)
		tasks.POST("/:id/update/", h.updateTask)
		tasks.POST("/bulk-delete/", h.bulkDeleteTasks)
	}
}
