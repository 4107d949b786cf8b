package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
	"github.com/Kentemie/Nimbus/pkg/contextkeys"
)

// IdentityOptions - требования к личности на защищенном маршруте.
// RequiredRoles проверяются по принципу "все из списка".
type IdentityOptions struct {
	IsActive      bool
	IsVerified    bool
	RequiredRoles []string
}

// RequireUser - быстрый контур аутентификации: личность берется из
// снапшота в токене, без обращения к БД. Отсутствующий и невалидный
// токен неразличимы для клиента.
func RequireUser(backend *auth.AuthenticationBackend, opts IdentityOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		snapshot, err := backend.Strategy.ReadToken(token)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		if err := checkIdentity(snapshot, opts); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(string(contextkeys.IdentityContextKey), snapshot)
		c.Set(string(contextkeys.TokenContextKey), token)
		c.Next()
	}
}

// RequireDBUser - строгий контур: после проверки токена личность
// перечитывается из БД, и требования применяются к свежей записи.
// Исчезнувший пользователь неотличим от невалидного токена.
func RequireDBUser(backend *auth.AuthenticationBackend, userService services.UserService, opts IdentityOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		snapshot, err := backend.Strategy.ReadToken(token)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		user, err := userService.GetByID(snapshot.ID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrRecordNotFound) {
				apperrors.HandleError(c, apperrors.ErrMissingToken)
				return
			}
			apperrors.HandleError(c, err)
			return
		}

		fresh := auth.SnapshotFromUser(user)
		if err := checkIdentity(fresh, opts); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(string(contextkeys.IdentityContextKey), fresh)
		c.Set(string(contextkeys.DBUserContextKey), user)
		c.Set(string(contextkeys.TokenContextKey), token)
		c.Next()
	}
}

// checkIdentity применяет требования маршрута к снапшоту пользователя.
// Порядок фиксирован: активность (401), затем верификация (403),
// затем роли (403).
func checkIdentity(snapshot *auth.UserSnapshot, opts IdentityOptions) error {
	if opts.IsActive && !snapshot.IsActive {
		return apperrors.ErrUserInactive
	}
	if opts.IsVerified && !snapshot.IsVerified {
		return apperrors.ErrUserNotVerified
	}

	if len(opts.RequiredRoles) > 0 {
		have := make(map[string]struct{})
		for _, name := range snapshot.RoleNames() {
			have[name] = struct{}{}
		}
		for _, required := range opts.RequiredRoles {
			if _, ok := have[required]; !ok {
				return apperrors.ErrForbiddenOperation
			}
		}
	}

	return nil
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// CurrentUser возвращает снапшот пользователя, положенный RequireUser
func CurrentUser(c *gin.Context) *auth.UserSnapshot {
	value, exists := c.Get(string(contextkeys.IdentityContextKey))
	if !exists {
		return nil
	}
	snapshot, _ := value.(*auth.UserSnapshot)
	return snapshot
}

// CurrentDBUser возвращает свежую запись пользователя, положенную RequireDBUser
func CurrentDBUser(c *gin.Context) *models.User {
	value, exists := c.Get(string(contextkeys.DBUserContextKey))
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// CurrentToken возвращает сырой bearer-токен текущего запроса
func CurrentToken(c *gin.Context) string {
	value, exists := c.Get(string(contextkeys.TokenContextKey))
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}
