package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kentemie/Nimbus/internal/models"
)

var jwtTestSecret = []byte("test-secret-key")

func testUser() *models.User {
	return &models.User{
		BaseModel:  models.BaseModel{ID: 42},
		Email:      "user@example.com",
		FirstName:  "Иван",
		LastName:   "Петров",
		IsActive:   true,
		IsVerified: true,
		Roles: []models.Role{
			{BaseModel: models.BaseModel{ID: 1}, Name: "admin", Slug: "admin"},
		},
	}
}

func newTestStrategy(lifetime time.Duration, audience []string) *JWTStrategy {
	return NewHMACJWTStrategy(jwtTestSecret, jwt.SigningMethodHS256, lifetime, audience)
}

// TestJWT_RoundTrip - выпущенный токен читается обратно со всем снапшотом
func TestJWT_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStrategy(time.Hour, []string{"nimbus:auth"})
	user := testUser()

	token, err := s.WriteToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	snapshot, err := s.ReadToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, snapshot.ID)
	assert.Equal(t, user.Email, snapshot.Email)
	assert.Equal(t, user.FirstName, snapshot.FirstName)
	assert.True(t, snapshot.IsActive)
	assert.True(t, snapshot.IsVerified)
	require.Len(t, snapshot.Roles, 1)
	assert.Equal(t, "admin", snapshot.Roles[0].Name)
	assert.Equal(t, []string{"admin"}, snapshot.RoleNames())
}

// TestJWT_InvalidSignature - токен с чужой подписью не принимается
func TestJWT_InvalidSignature(t *testing.T) {
	t.Parallel()

	issuer := NewHMACJWTStrategy([]byte("other-secret"), jwt.SigningMethodHS256, time.Hour, []string{"nimbus:auth"})
	verifier := newTestStrategy(time.Hour, []string{"nimbus:auth"})

	token, err := issuer.WriteToken(testUser())
	require.NoError(t, err)

	snapshot, err := verifier.ReadToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, snapshot)
}

// TestJWT_AlgorithmMismatch - токен с неожиданным алгоритмом не принимается,
// даже если подпись сошлась бы
func TestJWT_AlgorithmMismatch(t *testing.T) {
	t.Parallel()

	issuer := NewHMACJWTStrategy(jwtTestSecret, jwt.SigningMethodHS512, time.Hour, []string{"nimbus:auth"})
	verifier := newTestStrategy(time.Hour, []string{"nimbus:auth"})

	token, err := issuer.WriteToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ReadToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestJWT_AudienceIntersection - достаточно пересечения аудиторий,
// полное совпадение не требуется
func TestJWT_AudienceIntersection(t *testing.T) {
	t.Parallel()

	issuer := newTestStrategy(time.Hour, []string{"nimbus:auth", "nimbus:internal"})
	verifier := newTestStrategy(time.Hour, []string{"nimbus:internal", "nimbus:reports"})

	token, err := issuer.WriteToken(testUser())
	require.NoError(t, err)

	snapshot, err := verifier.ReadToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), snapshot.ID)
}

// TestJWT_AudienceMismatch - непересекающиеся аудитории это отказ
func TestJWT_AudienceMismatch(t *testing.T) {
	t.Parallel()

	issuer := newTestStrategy(time.Hour, []string{"nimbus:auth"})
	verifier := newTestStrategy(time.Hour, []string{"other:service"})

	token, err := issuer.WriteToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ReadToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestJWT_Expired - просроченный токен не принимается
func TestJWT_Expired(t *testing.T) {
	t.Parallel()

	s := newTestStrategy(-time.Minute, []string{"nimbus:auth"})

	token, err := s.WriteToken(testUser())
	require.NoError(t, err)

	_, err = s.ReadToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestJWT_ZeroLifetime - lifetime 0 выпускает токен без exp,
// и он остается валидным
func TestJWT_ZeroLifetime(t *testing.T) {
	t.Parallel()

	s := newTestStrategy(0, []string{"nimbus:auth"})

	token, err := s.WriteToken(testUser())
	require.NoError(t, err)

	snapshot, err := s.ReadToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), snapshot.ID)
}

// TestJWT_Garbage - мусор на входе это всегда ErrInvalidToken
func TestJWT_Garbage(t *testing.T) {
	t.Parallel()

	s := newTestStrategy(time.Hour, []string{"nimbus:auth"})

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := s.ReadToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token: %q", token)
	}
}

// TestJWT_DestroyNotSupported - инвалидация JWT не поддерживается по построению
func TestJWT_DestroyNotSupported(t *testing.T) {
	t.Parallel()

	s := newTestStrategy(time.Hour, []string{"nimbus:auth"})
	assert.ErrorIs(t, s.DestroyToken("whatever"), ErrNotSupported)
}
