package services

import (
	"strings"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/repositories"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

const weakPasswordReason = "Пароль слишком простой. Используйте как минимум 12 символов, " +
	"большие и маленькие буквы, цифры и специальные символы."

type UserService interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(req *dto.UserCreate) (*models.User, error)
	Update(user *models.User, req *dto.UserUpdate) (*models.User, error)
	Delete(user *models.User) error
	Authenticate(email, password string) (*models.User, error)

	// Флоу верификации и сброса пароля этой инсталляцией не поддерживаются
	RequestVerifyToken(email string) error
	Verify(token string) (*models.User, error)
	ForgotPassword(email string) error
	ResetPassword(token, password string) error
}

type UserServiceImpl struct {
	userRepo       repositories.UserRepository
	roleRepo       repositories.RoleRepository
	passwordHelper *auth.PasswordHelper
}

func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	passwordHelper *auth.PasswordHelper,
) UserService {
	if passwordHelper == nil {
		passwordHelper = auth.NewPasswordHelper()
	}
	return &UserServiceImpl{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		passwordHelper: passwordHelper,
	}
}

func (s *UserServiceImpl) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// Create - регистрация нового пользователя
func (s *UserServiceImpl) Create(req *dto.UserCreate) (*models.User, error) {
	// Политика сложности пароля
	if !s.passwordHelper.ValidatePassword(req.Password) {
		return nil, apperrors.ErrInvalidPassword.WithReason(weakPasswordReason)
	}

	// Уникальность email (без учета регистра)
	_, err := s.userRepo.GetByEmail(req.Email)
	if err == nil {
		return nil, apperrors.ErrRecordAlreadyExists
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hashed, err := s.passwordHelper.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	roles, err := s.roleRepo.GetByIDs(req.RoleIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:          strings.ToLower(req.Email),
		HashedPassword: hashed,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		IsActive:       true,
		IsVerified:     false,
		Roles:          roles,
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return user, nil
}

// Update - частичное обновление пользователя.
// Смена email повторно проверяет уникальность и сбрасывает is_verified;
// смена пароля повторно проходит политику и перехешируется.
func (s *UserServiceImpl) Update(user *models.User, req *dto.UserUpdate) (*models.User, error) {
	updates := make(map[string]interface{})

	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		_, err := s.userRepo.GetByEmail(*req.Email)
		if err == nil {
			return nil, apperrors.ErrRecordAlreadyExists
		}
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}

		updates["email"] = strings.ToLower(*req.Email)
		updates["is_verified"] = false
	}

	if req.Password != nil {
		if !s.passwordHelper.ValidatePassword(*req.Password) {
			return nil, apperrors.ErrInvalidPassword.WithReason(weakPasswordReason)
		}
		hashed, err := s.passwordHelper.Hash(*req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		updates["hashed_password"] = hashed
	}

	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.MiddleName != nil {
		updates["middle_name"] = *req.MiddleName
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsVerified != nil {
		updates["is_verified"] = *req.IsVerified
	}

	if req.RoleIDs != nil {
		roles, err := s.roleRepo.GetByIDs(*req.RoleIDs)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		updates["roles"] = roles
	}

	updated, err := s.userRepo.Update(user, updates)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return updated, nil
}

func (s *UserServiceImpl) Delete(user *models.User) error {
	if err := s.userRepo.Delete(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrRecordNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Authenticate проверяет пару email/пароль.
// Хеширование выполняется и для несуществующего email - время ответа
// не должно отличать "нет такого пользователя" от "неверный пароль".
func (s *UserServiceImpl) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			_, _ = s.passwordHelper.Hash(password)
			return nil, apperrors.ErrLoginBadCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	matched, newHash, err := s.passwordHelper.VerifyAndUpdate(password, user.HashedPassword)
	if err != nil || !matched {
		return nil, apperrors.ErrLoginBadCredentials
	}

	// Хеш посчитан с устаревшими параметрами - перезаписываем
	if newHash != "" {
		if _, err := s.userRepo.Update(user, map[string]interface{}{"hashed_password": newHash}); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return user, nil
}

func (s *UserServiceImpl) RequestVerifyToken(_ string) error {
	return apperrors.ErrNotSupported
}

func (s *UserServiceImpl) Verify(_ string) (*models.User, error) {
	return nil, apperrors.ErrNotSupported
}

func (s *UserServiceImpl) ForgotPassword(_ string) error {
	return apperrors.ErrNotSupported
}

func (s *UserServiceImpl) ResetPassword(_, _ string) error {
	return apperrors.ErrNotSupported
}
