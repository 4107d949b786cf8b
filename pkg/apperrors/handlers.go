package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// detailPayload собирает тело ответа в wire-формате:
// {"detail": "<code>"} либо {"detail": {"code": ..., "reason": ...}}
func (e *AppError) detailPayload() gin.H {
	if e.Reason != "" {
		return gin.H{"detail": gin.H{"code": e.Code, "reason": e.Reason}}
	}
	return gin.H{"detail": e.Code}
}

// HandleError - обработчик ошибок для Gin.
// Не-AppError оборачивается в InternalError, детали наружу не уходят.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "code", appErr.Code, "domain", appErr.Domain, "error", appErr.Error())
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, appErr.detailPayload())
}
