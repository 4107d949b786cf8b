package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/logger"
	"github.com/Kentemie/Nimbus/internal/middleware"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	userService services.UserService
	backend     *auth.AuthenticationBackend
}

func NewAuthHandler(base *BaseHandler, userService services.UserService, backend *auth.AuthenticationBackend) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		userService: userService,
		backend:     backend,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/request-verify-token", h.RequestVerifyToken)
		authGroup.POST("/verify", h.Verify)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}

	// logout доступен только с валидным токеном активного пользователя
	authGroup.POST(
		"/logout",
		middleware.RequireUser(h.backend, middleware.IdentityOptions{IsActive: true}),
		h.Logout,
	)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.UserCreate
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// На публичной регистрации служебные поля не принимаются
	req.IsActive = nil
	req.IsVerified = nil
	req.RoleIDs = nil

	user, err := h.userService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Неактивный пользователь получает тот же ответ, что и при
	// неверных кредах - существование учетки не раскрывается
	if !user.IsActive {
		h.HandleServiceError(c, apperrors.ErrLoginBadCredentials)
		return
	}

	resp, err := h.backend.Login(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "user logged in", "user_id", user.ID)
	c.JSON(resp.StatusCode, resp.Body)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	resp, err := h.backend.Logout(middleware.CurrentToken(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if resp.Body == nil {
		c.Status(resp.StatusCode)
		return
	}
	c.JSON(resp.StatusCode, resp.Body)
}

// RequestVerifyToken всегда отвечает 202: наличие учетки и поддержка
// флоу не раскрываются.
func (h *AuthHandler) RequestVerifyToken(c *gin.Context) {
	var req dto.EmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.RequestVerifyToken(req.Email); err != nil {
		logger.CtxWarn(c.Request.Context(), "verify token request not fulfilled", "error", err.Error())
	}

	c.Status(http.StatusAccepted)
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Verify(req.Token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserAlreadyVerified) {
			h.HandleServiceError(c, err)
			return
		}
		// Причина отказа не детализируется
		h.HandleServiceError(c, apperrors.ErrVerifyUserBadToken)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ForgotPassword всегда отвечает 202, как и RequestVerifyToken
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.ForgotPassword(req.Email); err != nil {
		logger.CtxWarn(c.Request.Context(), "password reset request not fulfilled", "error", err.Error())
	}

	c.Status(http.StatusAccepted)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.ResetPassword(req.Token, req.Password); err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidPassword) {
			h.HandleServiceError(c, err)
			return
		}
		h.HandleServiceError(c, apperrors.ErrResetPasswordBadToken)
		return
	}

	c.Status(http.StatusOK)
}
