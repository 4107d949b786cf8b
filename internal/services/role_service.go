package services

import (
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/repositories"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

type RoleService interface {
	GetByID(id uint) (*models.Role, error)
	GetAll() ([]models.Role, error)
	Create(req *dto.RoleCreate) (*models.Role, error)
	Update(id uint, req *dto.RoleUpdate) (*models.Role, error)
	Delete(id uint) error
}

type RoleServiceImpl struct {
	roleRepo repositories.RoleRepository
}

func NewRoleService(roleRepo repositories.RoleRepository) RoleService {
	return &RoleServiceImpl{roleRepo: roleRepo}
}

func (s *RoleServiceImpl) GetByID(id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoleNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return role, nil
}

func (s *RoleServiceImpl) GetAll() ([]models.Role, error) {
	roles, err := s.roleRepo.GetAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return roles, nil
}

func (s *RoleServiceImpl) Create(req *dto.RoleCreate) (*models.Role, error) {
	role := &models.Role{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return role, nil
}

func (s *RoleServiceImpl) Update(id uint, req *dto.RoleUpdate) (*models.Role, error) {
	role, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}

	// Пустой патч - валидный запрос, менять нечего
	if len(updates) == 0 {
		return role, nil
	}

	updated, err := s.roleRepo.Update(role, updates)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoleNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return updated, nil
}

func (s *RoleServiceImpl) Delete(id uint) error {
	if err := s.roleRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrRoleNotFound) {
			return apperrors.ErrRecordNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
