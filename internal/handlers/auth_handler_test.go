package handlers

import (
	"bytes"
	"encoding/json"
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
	"github.com/Kentemie/Nimbus/internal/validator"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserService - настраиваемая заглушка UserService для тестов хендлеров
type fakeUserService struct {
	authenticateUser *models.User
	authenticateErr  error
	createUser       *models.User
	createErr        error
	getByIDUser      *models.User
	verifyErr        error
	resetErr         error
}

func (f *fakeUserService) GetByID(uint) (*models.User, error) {
	if f.getByIDUser != nil {
		return f.getByIDUser, nil
	}
	return nil, apperrors.ErrRecordNotFound
}
func (f *fakeUserService) GetByEmail(string) (*models.User, error) {
	return nil, apperrors.ErrRecordNotFound
}
func (f *fakeUserService) Create(*dto.UserCreate) (*models.User, error) {
	return f.createUser, f.createErr
}
func (f *fakeUserService) Update(*models.User, *dto.UserUpdate) (*models.User, error) {
	panic("not used")
}
func (f *fakeUserService) Delete(*models.User) error { panic("not used") }
func (f *fakeUserService) Authenticate(string, string) (*models.User, error) {
	return f.authenticateUser, f.authenticateErr
}
func (f *fakeUserService) RequestVerifyToken(string) error { return apperrors.ErrNotSupported }
func (f *fakeUserService) Verify(string) (*models.User, error) {
	return nil, f.verifyErr
}
func (f *fakeUserService) ForgotPassword(string) error { return apperrors.ErrNotSupported }
func (f *fakeUserService) ResetPassword(string, string) error {
	return f.resetErr
}

func activeUser() *models.User {
	return &models.User{
		BaseModel:  models.BaseModel{ID: 1},
		Email:      "user@example.com",
		FirstName:  "John",
		LastName:   "Doe",
		IsActive:   true,
		IsVerified: true,
	}
}

func newAuthTestRouter(svc *fakeUserService) (*gin.Engine, *auth.AuthenticationBackend) {
	strategy := auth.NewHMACJWTStrategy([]byte("test-secret"), jwt.SigningMethodHS256, time.Hour, []string{"nimbus:auth"})
	backend := auth.NewAuthenticationBackend("jwt", auth.NewBearerTransport(), strategy)

	handler := NewAuthHandler(NewBaseHandler(validator.New()), svc, backend)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r, backend
}

func postJSON(r *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestLogin_Success - успешный логин отдает bearer-токен
func TestLogin_Success(t *testing.T) {
	t.Parallel()

	r, backend := newAuthTestRouter(&fakeUserService{authenticateUser: activeUser()})

	w := postJSON(r, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "Str0ng!Passw0rd",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bearer", body.TokenType)

	snapshot, err := backend.Strategy.ReadToken(body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), snapshot.ID)
}

// TestLogin_Failures - неверные креды и неактивный пользователь дают
// один и тот же ответ
func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	inactive := activeUser()
	inactive.IsActive = false

	cases := []struct {
		name string
		svc  *fakeUserService
	}{
		{"неверные креды", &fakeUserService{authenticateErr: apperrors.ErrLoginBadCredentials}},
		{"неактивный пользователь", &fakeUserService{authenticateUser: inactive}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newAuthTestRouter(tc.svc)
			w := postJSON(r, "/api/v1/auth/login", gin.H{
				"email":    "user@example.com",
				"password": "whatever-pass",
			}, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"detail": "login_bad_credentials"}`, w.Body.String())
		})
	}
}

// TestLogin_ValidationFirst - кривое тело не доходит до сервиса
func TestLogin_ValidationFirst(t *testing.T) {
	t.Parallel()

	r, _ := newAuthTestRouter(&fakeUserService{})

	w := postJSON(r, "/api/v1/auth/login", gin.H{"email": "not-an-email"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

// TestLogout - logout требует токен и отвечает пустым 204
func TestLogout(t *testing.T) {
	t.Parallel()

	r, backend := newAuthTestRouter(&fakeUserService{})

	// Без токена - 401
	w := postJSON(r, "/api/v1/auth/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "missing_token"}`, w.Body.String())

	// С токеном - 204 без тела
	token, err := backend.Strategy.WriteToken(activeUser())
	require.NoError(t, err)

	w = postJSON(r, "/api/v1/auth/logout", nil, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

// TestRequestFlows_Always202 - запросы токена верификации и сброса пароля
// всегда отвечают 202, не раскрывая ни учетку, ни поддержку флоу
func TestRequestFlows_Always202(t *testing.T) {
	t.Parallel()

	r, _ := newAuthTestRouter(&fakeUserService{})

	for _, path := range []string{
		"/api/v1/auth/request-verify-token",
		"/api/v1/auth/forgot-password",
	} {
		w := postJSON(r, path, gin.H{"email": "ghost@example.com"}, nil)
		assert.Equal(t, http.StatusAccepted, w.Code, "path: %s", path)
	}
}

// TestVerify_ErrorMapping - отказ верификации не детализируется,
// кроме случая "уже верифицирован"
func TestVerify_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		svcErr   error
		wantBody string
	}{
		{"флоу не поддерживается", apperrors.ErrNotSupported, `{"detail": "verify_user_bad_token"}`},
		{"уже верифицирован", apperrors.ErrUserAlreadyVerified, `{"detail": "user_already_verified"}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newAuthTestRouter(&fakeUserService{verifyErr: tc.svcErr})
			w := postJSON(r, "/api/v1/auth/verify", gin.H{"token": "some-token"}, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

// TestResetPassword_ErrorMapping - плохой токен сброса и слабый пароль
// различаются в ответе
func TestResetPassword_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		svcErr   error
		wantBody string
	}{
		{"флоу не поддерживается", apperrors.ErrNotSupported, `{"detail": "reset_password_bad_token"}`},
		{
			"слабый пароль",
			apperrors.ErrInvalidPassword.WithReason("слишком простой"),
			`{"detail": {"code": "invalid_password", "reason": "слишком простой"}}`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newAuthTestRouter(&fakeUserService{resetErr: tc.svcErr})
			w := postJSON(r, "/api/v1/auth/reset-password", gin.H{
				"token":    "some-token",
				"password": "whatever-pass",
			}, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

// TestRegister - регистрация отвечает 201 и не отдает хеш пароля
func TestRegister(t *testing.T) {
	t.Parallel()

	created := activeUser()
	created.HashedPassword = "$argon2id$..."
	r, _ := newAuthTestRouter(&fakeUserService{createUser: created})

	w := postJSON(r, "/api/v1/auth/register", gin.H{
		"email":      "user@example.com",
		"password":   "Str0ng!Passw0rd",
		"first_name": "John",
		"last_name":  "Doe",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "user@example.com")
	assert.NotContains(t, w.Body.String(), "argon2id")
	assert.NotContains(t, w.Body.String(), "hashed_password")
}
