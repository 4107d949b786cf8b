package auth

import (
	"github.com/Kentemie/Nimbus/internal/models"
)

// RoleSnapshot - проекция роли, зашитая в токен
type RoleSnapshot struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UserSnapshot - проекция пользователя, зашитая в JWT.
// Для "быстрых" проверок личности она является источником истины;
// авторитетный источник - запись в БД (см. middleware.RequireDBUser).
type UserSnapshot struct {
	ID         uint           `json:"id"`
	Email      string         `json:"email"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	MiddleName string         `json:"middle_name,omitempty"`
	IsActive   bool           `json:"is_active"`
	IsVerified bool           `json:"is_verified"`
	Roles      []RoleSnapshot `json:"roles"`
}

// RoleNames возвращает имена ролей из снапшота
func (s *UserSnapshot) RoleNames() []string {
	names := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		names = append(names, r.Name)
	}
	return names
}

// SnapshotFromUser строит проекцию пользователя для зашивки в токен
func SnapshotFromUser(user *models.User) *UserSnapshot {
	roles := make([]RoleSnapshot, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, RoleSnapshot{ID: r.ID, Name: r.Name, Slug: r.Slug})
	}

	return &UserSnapshot{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		MiddleName: user.MiddleName,
		IsActive:   user.IsActive,
		IsVerified: user.IsVerified,
		Roles:      roles,
	}
}
