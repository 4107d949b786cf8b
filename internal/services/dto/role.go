package dto

// RoleCreate - тело запроса на создание роли
type RoleCreate struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// RoleUpdate - частичное обновление роли
type RoleUpdate struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}
