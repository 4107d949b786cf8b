package dto

// LoginRequest - тело запроса на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EmailRequest - запрос токена верификации или сброса пароля
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyRequest - подтверждение email по токену
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResetPasswordRequest - установка нового пароля по токену сброса
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}
