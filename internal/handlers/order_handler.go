package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/middleware"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/internal/services/dto"
)

type OrderHandler struct {
	*BaseHandler
	orderService services.OrderService
	userService  services.UserService
	backend      *auth.AuthenticationBackend
}

func NewOrderHandler(
	base *BaseHandler,
	orderService services.OrderService,
	userService services.UserService,
	backend *auth.AuthenticationBackend,
) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
		userService:  userService,
		backend:      backend,
	}
}

// RegisterRoutes регистрирует маршруты заказов.
// Обычные операции доступны активному верифицированному пользователю
// по токену; удаление - административное и идет по свежей записи из БД.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(middleware.RequireUser(h.backend, middleware.IdentityOptions{
		IsActive:   true,
		IsVerified: true,
	}))
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id", h.UpdateOrder)
	}

	adminOrders := rg.Group("/orders")
	adminOrders.Use(middleware.RequireDBUser(h.backend, h.userService, middleware.IdentityOptions{
		IsActive:      true,
		IsVerified:    true,
		RequiredRoles: []string{"admin"},
	}))
	{
		adminOrders.DELETE("/:id", h.SoftDeleteOrder)
		adminOrders.DELETE("/:id/permanent", h.HardDeleteOrder)
	}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders отдает заказы текущего пользователя с опциональными
// фильтрами по статусу и ценовому диапазону
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filter dto.OrderFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	user := middleware.CurrentUser(c)

	orders, err := h.orderService.GetFiltered(c.Request.Context(), user.ID, &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.OrderCreate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)

	order, err := h.orderService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.OrderUpdate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) SoftDeleteOrder(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.SoftDelete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) HardDeleteOrder(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.HardDelete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
