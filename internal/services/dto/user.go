package dto

// UserCreate - тело запроса на регистрацию пользователя
type UserCreate struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	MiddleName string `json:"middle_name"`
	IsActive   *bool  `json:"is_active"`
	IsVerified *bool  `json:"is_verified"`
	RoleIDs    []uint `json:"role_ids"`
}

// UserUpdate - частичное обновление пользователя.
// nil-поля не трогаются.
type UserUpdate struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	MiddleName *string `json:"middle_name"`
	IsActive   *bool   `json:"is_active"`
	IsVerified *bool   `json:"is_verified"`
	RoleIDs    *[]uint `json:"role_ids"`
}
