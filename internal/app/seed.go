package app

import (
	"github.com/Kentemie/Nimbus/internal/config"
	"github.com/Kentemie/Nimbus/internal/logger"
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

const adminRoleName = "admin"

// seedFirstAdmin создает роль admin и первого администратора,
// если они заданы в конфигурации и еще не существуют.
// Вызывается на старте до открытия HTTP-порта.
func seedFirstAdmin(cfg *config.Config, container *services.ServiceContainer) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Info("Admin credentials not configured, seeding skipped")
		return nil
	}

	role, err := findOrCreateAdminRole(container.Role)
	if err != nil {
		return err
	}

	_, err = container.User.GetByEmail(cfg.Admin.Email)
	if err == nil {
		return nil // админ уже есть
	}
	if !apperrors.Is(err, apperrors.ErrRecordNotFound) {
		return err
	}

	active := true
	verified := true
	_, err = container.User.Create(&dto.UserCreate{
		Email:      cfg.Admin.Email,
		Password:   cfg.Admin.Password,
		FirstName:  "Admin",
		LastName:   "Admin",
		IsActive:   &active,
		IsVerified: &verified,
		RoleIDs:    []uint{role.ID},
	})
	if err != nil {
		return err
	}

	logger.Info("First admin user created", "email", cfg.Admin.Email)
	return nil
}

func findOrCreateAdminRole(roleService services.RoleService) (*models.Role, error) {
	roles, err := roleService.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range roles {
		if roles[i].Name == adminRoleName {
			return &roles[i], nil
		}
	}

	return roleService.Create(&dto.RoleCreate{
		Name: adminRoleName,
		Slug: adminRoleName,
	})
}
