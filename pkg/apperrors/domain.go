package apperrors

import (
	"net/http"
)

/*
Предопределенные доменные ошибки. Сервисы возвращают их как есть,
хэндлеры отдают клиенту через HandleError.
*/

// --- Записи ---

// ErrRecordNotFound - запись не существует или мягко удалена (404)
var ErrRecordNotFound = New(
	CodeRecordNotFound,
	"resource",
	"Record does not exist or is deleted",
	http.StatusNotFound,
)

// ErrRecordAlreadyExists - нарушение уникальности (400)
var ErrRecordAlreadyExists = New(
	CodeRecordAlreadyExists,
	"resource",
	"Record already exists",
	http.StatusBadRequest,
)

// --- Аутентификация и авторизация ---

// ErrMissingToken - токен отсутствует или не прошел проверку (401).
// Код намеренно один и тот же для отсутствующего и невалидного токена.
var ErrMissingToken = New(
	CodeMissingToken,
	"auth",
	"Missing or invalid token",
	http.StatusUnauthorized,
)

// ErrLoginBadCredentials - неверная пара email/пароль (400).
// Не раскрывает, существует ли email.
var ErrLoginBadCredentials = New(
	CodeLoginBadCredentials,
	"auth",
	"Invalid credentials",
	http.StatusBadRequest,
)

// ErrUserInactive - аккаунт деактивирован (401)
var ErrUserInactive = New(
	CodeUserInactive,
	"auth",
	"User is inactive",
	http.StatusUnauthorized,
)

// ErrUserNotVerified - аккаунт не прошел верификацию (403)
var ErrUserNotVerified = New(
	CodeUserNotVerified,
	"auth",
	"User is not verified",
	http.StatusForbidden,
)

// ErrForbiddenOperation - не хватает роли для операции (403)
var ErrForbiddenOperation = New(
	CodeForbiddenOperation,
	"auth",
	"You are not allowed to perform this operation",
	http.StatusForbidden,
)

// --- Пользователи ---

// ErrInvalidPassword - пароль не прошел политику сложности (400).
// Причина передается через WithReason.
var ErrInvalidPassword = New(
	CodeInvalidPassword,
	"user",
	"Password does not meet the complexity policy",
	http.StatusBadRequest,
)

// ErrUserAlreadyVerified - повторная верификация (400)
var ErrUserAlreadyVerified = New(
	CodeUserAlreadyVerified,
	"user",
	"User is already verified",
	http.StatusBadRequest,
)

// ErrVerifyUserBadToken - неверный или истекший токен верификации (400)
var ErrVerifyUserBadToken = New(
	CodeVerifyUserBadToken,
	"user",
	"Invalid or expired verification token",
	http.StatusBadRequest,
)

// ErrResetPasswordBadToken - неверный или истекший токен сброса пароля (400)
var ErrResetPasswordBadToken = New(
	CodeResetPasswordBadToken,
	"user",
	"Invalid or expired reset password token",
	http.StatusBadRequest,
)

// --- Заказы ---

// ErrOrderIsConfirmed - подтвержденный заказ не может быть изменен (400)
var ErrOrderIsConfirmed = New(
	CodeOrderIsConfirmed,
	"order",
	"A confirmed order cannot be modified",
	http.StatusBadRequest,
)

// --- Внутреннее ---

// ErrNotSupported - стратегия/транспорт не поддерживает операцию.
// Гасится на местах вызова, наружу не уходит.
var ErrNotSupported = New(
	CodeNotSupported,
	"auth",
	"Operation is not supported",
	http.StatusInternalServerError,
)
