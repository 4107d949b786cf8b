package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/middleware"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/internal/services/dto"
)

type RoleHandler struct {
	*BaseHandler
	roleService services.RoleService
	userService services.UserService
	backend     *auth.AuthenticationBackend
}

func NewRoleHandler(
	base *BaseHandler,
	roleService services.RoleService,
	userService services.UserService,
	backend *auth.AuthenticationBackend,
) *RoleHandler {
	return &RoleHandler{
		BaseHandler: base,
		roleService: roleService,
		userService: userService,
		backend:     backend,
	}
}

// RegisterRoutes - справочник ролей целиком административный
func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	roles.Use(middleware.RequireDBUser(h.backend, h.userService, middleware.IdentityOptions{
		IsActive:      true,
		IsVerified:    true,
		RequiredRoles: []string{"admin"},
	}))
	{
		roles.GET("", h.ListRoles)
		roles.GET("/:id", h.GetRole)
		roles.POST("", h.CreateRole)
		roles.PATCH("/:id", h.UpdateRole)
		roles.DELETE("/:id", h.DeleteRole)
	}
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.GetAll()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req dto.RoleCreate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role, err := h.roleService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RoleUpdate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role, err := h.roleService.Update(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.Delete(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
