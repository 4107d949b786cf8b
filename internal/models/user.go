package models

type User struct {
	BaseModel
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`
	FirstName      string `gorm:"not null" json:"first_name"`
	LastName       string `gorm:"not null" json:"last_name"`
	MiddleName     string `json:"middle_name,omitempty"`
	IsActive       bool   `gorm:"not null;default:true" json:"is_active"`
	IsVerified     bool   `gorm:"not null;default:false" json:"is_verified"`

	// Relations
	Roles []Role `gorm:"many2many:user_roles" json:"roles"`
}

// RoleNames возвращает имена ролей пользователя
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	BaseModel
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	// Relations
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions"`
}

type Permission struct {
	BaseModel
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}

// UserRole - связка многие-ко-многим пользователь/роль
type UserRole struct {
	UserID uint `gorm:"primaryKey"`
	RoleID uint `gorm:"primaryKey"`
}

// RolePermission - связка многие-ко-многим роль/разрешение
type RolePermission struct {
	RoleID       uint `gorm:"primaryKey"`
	PermissionID uint `gorm:"primaryKey"`
}
