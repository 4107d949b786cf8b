package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Kentemie/Nimbus/internal/models"
)

// ErrInvalidToken - единый ответ на любую проблему с токеном:
// подпись, алгоритм, аудитория, срок, структура. Наружу различия
// не раскрываются намеренно.
var ErrInvalidToken = errors.New("invalid token")

// userClaims - полезная нагрузка JWT со встроенным снапшотом пользователя
type userClaims struct {
	User *UserSnapshot `json:"user,omitempty"`
	jwt.RegisteredClaims
}

// JWTStrategy реализует Strategy на подписанных JWT.
// Ключи - any: []byte для HMAC, *rsa.PrivateKey / *rsa.PublicKey
// (или ECDSA-пары) для асимметричных схем.
type JWTStrategy struct {
	signingKey      any
	verificationKey any
	method          jwt.SigningMethod
	lifetime        time.Duration
	audience        []string
}

// NewJWTStrategy создает стратегию.
// lifetime == 0 означает токен без exp.
func NewJWTStrategy(
	signingKey any,
	verificationKey any,
	method jwt.SigningMethod,
	lifetime time.Duration,
	audience []string,
) *JWTStrategy {
	if len(audience) == 0 {
		audience = []string{"nimbus:auth"}
	}
	return &JWTStrategy{
		signingKey:      signingKey,
		verificationKey: verificationKey,
		method:          method,
		lifetime:        lifetime,
		audience:        audience,
	}
}

// NewHMACJWTStrategy - частый случай: симметричный секрет, один ключ
// на подпись и проверку.
func NewHMACJWTStrategy(secret []byte, method jwt.SigningMethod, lifetime time.Duration, audience []string) *JWTStrategy {
	return NewJWTStrategy(secret, secret, method, lifetime, audience)
}

// WriteToken генерирует JWT для пользователя со встроенным снапшотом
func (s *JWTStrategy) WriteToken(user *models.User) (string, error) {
	now := time.Now().UTC()

	claims := userClaims{
		User: SnapshotFromUser(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  fmt.Sprintf("%d:%s", user.ID, user.Email),
			Audience: jwt.ClaimStrings(s.audience),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	if s.lifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.lifetime))
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ReadToken декодирует и проверяет JWT.
// Любая проблема схлопывается в ErrInvalidToken.
func (s *JWTStrategy) ReadToken(token string) (*UserSnapshot, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&userClaims{},
		func(t *jwt.Token) (any, error) { return s.verificationKey, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuedAt(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*userClaims)
	if !ok || claims.User == nil {
		return nil, ErrInvalidToken
	}

	if !s.audienceMatches(claims.Audience) {
		return nil, ErrInvalidToken
	}

	return claims.User, nil
}

// DestroyToken не поддерживается: подписанный токен валиден до истечения
// срока по построению.
func (s *JWTStrategy) DestroyToken(_ string) error {
	return ErrNotSupported
}

// audienceMatches: токен валиден, если его aud пересекается
// с настроенным набором аудиторий.
func (s *JWTStrategy) audienceMatches(tokenAud jwt.ClaimStrings) bool {
	for _, expected := range s.audience {
		for _, got := range tokenAud {
			if got == expected {
				return true
			}
		}
	}
	return false
}
