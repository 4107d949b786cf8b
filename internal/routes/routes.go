package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kentemie/Nimbus/internal/handlers"
)

// RegisterRoutes вешает все маршруты приложения на /api/v1.
// Защита маршрутов живет рядом с их регистрацией в самих обработчиках.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(api)
		h.User.RegisterRoutes(api)
		h.Order.RegisterRoutes(api)
		h.Role.RegisterRoutes(api)
		h.Product.RegisterRoutes(api)
	}
}
