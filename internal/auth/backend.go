package auth

import (
	"errors"
	"net/http"

	"github.com/Kentemie/Nimbus/internal/models"
)

// ErrNotSupported - стратегия или транспорт не поддерживает операцию.
// Гасится на местах вызова (logout), наружу не уходит.
var ErrNotSupported = errors.New("operation not supported")

// Strategy - формат токена: выпуск, чтение, инвалидация.
// Новый формат (например, opaque session id) подключается без правок бэкенда.
type Strategy interface {
	WriteToken(user *models.User) (string, error)
	ReadToken(token string) (*UserSnapshot, error)
	DestroyToken(token string) error
}

// Transport - способ доставки токена клиенту (bearer, cookie, ...).
type Transport interface {
	LoginResponse(token string) (*Response, error)
	LogoutResponse() (*Response, error)
}

// Response - транспортный ответ: HTTP-статус и тело (nil = без тела)
type Response struct {
	StatusCode int
	Body       any
}

// BearerResponse - тело ответа логина для bearer-транспорта
type BearerResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// BearerTransport выдает токен в JSON-теле; выделенного ответа
// на logout у него нет.
type BearerTransport struct{}

func NewBearerTransport() *BearerTransport {
	return &BearerTransport{}
}

func (t *BearerTransport) LoginResponse(token string) (*Response, error) {
	return &Response{
		StatusCode: http.StatusOK,
		Body:       BearerResponse{AccessToken: token, TokenType: "bearer"},
	}, nil
}

func (t *BearerTransport) LogoutResponse() (*Response, error) {
	return nil, ErrNotSupported
}

// AuthenticationBackend связывает стратегию и транспорт.
// Собственного состояния не хранит.
type AuthenticationBackend struct {
	Name      string
	Transport Transport
	Strategy  Strategy
}

func NewAuthenticationBackend(name string, transport Transport, strategy Strategy) *AuthenticationBackend {
	return &AuthenticationBackend{
		Name:      name,
		Transport: transport,
		Strategy:  strategy,
	}
}

// Login выпускает токен для пользователя и заворачивает его
// в транспортный ответ.
func (b *AuthenticationBackend) Login(user *models.User) (*Response, error) {
	token, err := b.Strategy.WriteToken(user)
	if err != nil {
		return nil, err
	}
	return b.Transport.LoginResponse(token)
}

// Logout - попытка инвалидации токена (best effort).
// Если стратегия не умеет инвалидировать, это не ошибка.
// Если у транспорта нет ответа на logout - отдаем пустой 204.
func (b *AuthenticationBackend) Logout(token string) (*Response, error) {
	if err := b.Strategy.DestroyToken(token); err != nil {
		if !errors.Is(err, ErrNotSupported) {
			return nil, err
		}
	}

	resp, err := b.Transport.LogoutResponse()
	if err != nil {
		if !errors.Is(err, ErrNotSupported) {
			return nil, err
		}
		return &Response{StatusCode: http.StatusNoContent}, nil
	}

	return resp, nil
}
