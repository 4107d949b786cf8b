package dto

// ProductCreate - тело запроса на создание продукта
type ProductCreate struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

// ProductUpdate - частичное обновление продукта
type ProductUpdate struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}
