package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/middleware"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/internal/services/dto"
)

type ProductHandler struct {
	*BaseHandler
	productService services.ProductService
	userService    services.UserService
	backend        *auth.AuthenticationBackend
}

func NewProductHandler(
	base *BaseHandler,
	productService services.ProductService,
	userService services.UserService,
	backend *auth.AuthenticationBackend,
) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    base,
		productService: productService,
		userService:    userService,
		backend:        backend,
	}
}

// RegisterRoutes - каталог читается любым авторизованным пользователем,
// правки каталога административные
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.Use(middleware.RequireUser(h.backend, middleware.IdentityOptions{IsActive: true}))
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}

	adminProducts := rg.Group("/products")
	adminProducts.Use(middleware.RequireDBUser(h.backend, h.userService, middleware.IdentityOptions{
		IsActive:      true,
		IsVerified:    true,
		RequiredRoles: []string{"admin"},
	}))
	{
		adminProducts.POST("", h.CreateProduct)
		adminProducts.PATCH("/:id", h.UpdateProduct)
		adminProducts.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.GetAll()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductCreate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProductUpdate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
