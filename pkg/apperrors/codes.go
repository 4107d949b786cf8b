package apperrors

// ErrorCode - тип для кодов ошибок
// Значения совпадают с wire-кодами, которые уходят клиенту в поле "detail".
type ErrorCode string

const (
	// Системные и неизвестные ошибки
	CodeInternalError    ErrorCode = "internal_error"
	CodeValidationFailed ErrorCode = "validation_failed"

	// Общие ошибки бизнес-логики
	CodeRecordNotFound      ErrorCode = "record_not_found"
	CodeRecordAlreadyExists ErrorCode = "record_already_exists"

	// Аутентификация и авторизация
	CodeMissingToken        ErrorCode = "missing_token"
	CodeForbiddenOperation  ErrorCode = "forbidden_operation"
	CodeLoginBadCredentials ErrorCode = "login_bad_credentials"
	CodeUserInactive        ErrorCode = "user_inactive"
	CodeUserNotVerified     ErrorCode = "user_not_verified"

	// Пользователи
	CodeInvalidPassword       ErrorCode = "invalid_password"
	CodeUserAlreadyVerified   ErrorCode = "user_already_verified"
	CodeVerifyUserBadToken    ErrorCode = "verify_user_bad_token"
	CodeResetPasswordBadToken ErrorCode = "reset_password_bad_token"

	// Заказы
	CodeOrderIsConfirmed ErrorCode = "order_is_confirmed"

	// Внутренний код: операция не поддерживается стратегией/транспортом.
	// Наружу не уходит - гасится на местах вызова (logout, verify, reset).
	CodeNotSupported ErrorCode = "not_supported"
)
