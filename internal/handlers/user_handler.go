package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/middleware"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	backend     *auth.AuthenticationBackend
}

func NewUserHandler(base *BaseHandler, userService services.UserService, backend *auth.AuthenticationBackend) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		backend:     backend,
	}
}

// RegisterRoutes регистрирует маршруты работы с пользователями.
// Маршруты /me работают по свежей записи из БД: личные данные нельзя
// отдавать из устаревшего снапшота в токене.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/users/me")
	me.Use(middleware.RequireDBUser(h.backend, h.userService, middleware.IdentityOptions{IsActive: true}))
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
	}

	admin := rg.Group("/users")
	admin.Use(middleware.RequireDBUser(h.backend, h.userService, middleware.IdentityOptions{
		IsActive:      true,
		IsVerified:    true,
		RequiredRoles: []string{"admin"},
	}))
	{
		admin.GET("/:id", h.GetUser)
		admin.PATCH("/:id", h.UpdateUser)
		admin.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentDBUser(c))
}

// UpdateMe - самостоятельное редактирование профиля.
// Служебные поля пользователю недоступны.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UserUpdate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	req.IsActive = nil
	req.IsVerified = nil
	req.RoleIDs = nil

	updated, err := h.userService.Update(middleware.CurrentDBUser(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UserUpdate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	updated, err := h.userService.Update(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	// Администратор не может удалить сам себя
	if current := middleware.CurrentDBUser(c); current != nil && current.ID == id {
		h.HandleServiceError(c, apperrors.ErrForbiddenOperation)
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.userService.Delete(user); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
