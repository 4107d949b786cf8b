package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubUserService - реализация services.UserService для тестов middleware.
// Нужен только GetByID, остальное не должно вызываться.
type stubUserService struct {
	users map[uint]*models.User
}

func (s *stubUserService) GetByID(id uint) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.ErrRecordNotFound
}

func (s *stubUserService) GetByEmail(string) (*models.User, error) { panic("not used") }
func (s *stubUserService) Create(*dto.UserCreate) (*models.User, error) {
	panic("not used")
}
func (s *stubUserService) Update(*models.User, *dto.UserUpdate) (*models.User, error) {
	panic("not used")
}
func (s *stubUserService) Delete(*models.User) error { panic("not used") }
func (s *stubUserService) Authenticate(string, string) (*models.User, error) {
	panic("not used")
}
func (s *stubUserService) RequestVerifyToken(string) error          { panic("not used") }
func (s *stubUserService) Verify(string) (*models.User, error)      { panic("not used") }
func (s *stubUserService) ForgotPassword(string) error              { panic("not used") }
func (s *stubUserService) ResetPassword(string, string) error       { panic("not used") }

func newMiddlewareBackend() *auth.AuthenticationBackend {
	strategy := auth.NewHMACJWTStrategy([]byte("test-secret"), jwt.SigningMethodHS256, time.Hour, []string{"nimbus:auth"})
	return auth.NewAuthenticationBackend("jwt", auth.NewBearerTransport(), strategy)
}

func makeUser(id uint, active, verified bool, roles ...string) *models.User {
	user := &models.User{
		BaseModel:  models.BaseModel{ID: id},
		Email:      "user@example.com",
		FirstName:  "Иван",
		LastName:   "Петров",
		IsActive:   active,
		IsVerified: verified,
	}
	for i, name := range roles {
		user.Roles = append(user.Roles, models.Role{
			BaseModel: models.BaseModel{ID: uint(i + 1)},
			Name:      name,
			Slug:      name,
		})
	}
	return user
}

func issueToken(t *testing.T, backend *auth.AuthenticationBackend, user *models.User) string {
	t.Helper()
	token, err := backend.Strategy.WriteToken(user)
	require.NoError(t, err)
	return token
}

func performRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func routerWithGuard(guard gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	return r
}

// TestRequireUser_TokenProblems - отсутствующий, кривой и невалидный
// токен дают одинаковый 401 missing_token
func TestRequireUser_TokenProblems(t *testing.T) {
	t.Parallel()

	backend := newMiddlewareBackend()
	r := routerWithGuard(RequireUser(backend, IdentityOptions{IsActive: true}))

	cases := []struct {
		name   string
		header string
	}{
		{"без заголовка", ""},
		{"не bearer", "Basic dXNlcjpwYXNz"},
		{"bearer без токена", "Bearer "},
		{"мусорный токен", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := performRequest(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"detail": "missing_token"}`, w.Body.String())
		})
	}
}

// TestRequireUser_IdentityChecks - порядок проверок личности и их коды
func TestRequireUser_IdentityChecks(t *testing.T) {
	t.Parallel()

	backend := newMiddlewareBackend()

	cases := []struct {
		name       string
		user       *models.User
		opts       IdentityOptions
		wantStatus int
		wantBody   string
	}{
		{
			name:       "неактивный - 401",
			user:       makeUser(1, false, true),
			opts:       IdentityOptions{IsActive: true},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail": "user_inactive"}`,
		},
		{
			name:       "неверифицированный - 403",
			user:       makeUser(2, true, false),
			opts:       IdentityOptions{IsActive: true, IsVerified: true},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail": "user_not_verified"}`,
		},
		{
			name:       "нет роли - 403",
			user:       makeUser(3, true, true, "manager"),
			opts:       IdentityOptions{IsActive: true, IsVerified: true, RequiredRoles: []string{"admin"}},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail": "forbidden_operation"}`,
		},
		{
			name:       "есть не все роли - 403",
			user:       makeUser(4, true, true, "admin"),
			opts:       IdentityOptions{IsActive: true, RequiredRoles: []string{"admin", "auditor"}},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail": "forbidden_operation"}`,
		},
		{
			name:       "все проверки пройдены - 200",
			user:       makeUser(5, true, true, "admin", "auditor"),
			opts:       IdentityOptions{IsActive: true, IsVerified: true, RequiredRoles: []string{"admin", "auditor"}},
			wantStatus: http.StatusOK,
			wantBody:   `{"id": 5}`,
		},
		{
			name:       "без требований пускает даже неактивного",
			user:       makeUser(6, false, false),
			opts:       IdentityOptions{},
			wantStatus: http.StatusOK,
			wantBody:   `{"id": 6}`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := routerWithGuard(RequireUser(backend, tc.opts))
			token := issueToken(t, backend, tc.user)

			w := performRequest(r, "Bearer "+token)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

// TestRequireDBUser_VanishedUser - валидный токен исчезнувшего
// пользователя неотличим от невалидного токена
func TestRequireDBUser_VanishedUser(t *testing.T) {
	t.Parallel()

	backend := newMiddlewareBackend()
	userService := &stubUserService{users: map[uint]*models.User{}}

	r := gin.New()
	r.GET("/protected",
		RequireDBUser(backend, userService, IdentityOptions{IsActive: true}),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	token := issueToken(t, backend, makeUser(99, true, true))

	w := performRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "missing_token"}`, w.Body.String())
}

// TestRequireDBUser_StaleToken - требования применяются к свежей записи
// из БД, а не к снапшоту в токене
func TestRequireDBUser_StaleToken(t *testing.T) {
	t.Parallel()

	backend := newMiddlewareBackend()

	// Токен выпущен, когда пользователь был верифицирован и имел роль admin
	snapshotUser := makeUser(7, true, true, "admin")
	token := issueToken(t, backend, snapshotUser)

	// С тех пор верификацию и роль отозвали
	userService := &stubUserService{users: map[uint]*models.User{
		7: makeUser(7, true, false),
	}}

	r := gin.New()
	r.GET("/protected",
		RequireDBUser(backend, userService, IdentityOptions{IsActive: true, IsVerified: true, RequiredRoles: []string{"admin"}}),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := performRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail": "user_not_verified"}`, w.Body.String())
}

// TestRequireDBUser_ContextValues - в контекст попадает и снапшот,
// и свежая запись, и сырой токен
func TestRequireDBUser_ContextValues(t *testing.T) {
	t.Parallel()

	backend := newMiddlewareBackend()
	dbUser := makeUser(8, true, true, "admin")
	userService := &stubUserService{users: map[uint]*models.User{8: dbUser}}

	token := issueToken(t, backend, dbUser)

	r := gin.New()
	r.GET("/protected",
		RequireDBUser(backend, userService, IdentityOptions{IsActive: true}),
		func(c *gin.Context) {
			assert.Equal(t, uint(8), CurrentUser(c).ID)
			require.NotNil(t, CurrentDBUser(c))
			assert.Equal(t, uint(8), CurrentDBUser(c).ID)
			assert.Equal(t, token, CurrentToken(c))
			c.Status(http.StatusOK)
		},
	)

	w := performRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
