package dto

import (
	"github.com/Kentemie/Nimbus/internal/models"
)

// OrderProductCreateUpdate - строка заказа во входящем запросе
type OrderProductCreateUpdate struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"omitempty,min=1"`
}

// OrderCreate - тело запроса на создание заказа
type OrderCreate struct {
	TotalPrice    float64                    `json:"total_price" validate:"gte=0"`
	OrderProducts []OrderProductCreateUpdate `json:"order_products" validate:"required,min=1,dive"`
}

// OrderUpdate - частичное обновление заказа. nil-поля не трогаются.
// order_products и total_price передаются оба или никакой -
// правило проверяется на уровне валидатора (struct-level rule).
type OrderUpdate struct {
	Status        *models.OrderStatus        `json:"status" validate:"omitempty,is-order-status"`
	TotalPrice    *float64                   `json:"total_price" validate:"omitempty,gte=0"`
	OrderProducts []OrderProductCreateUpdate `json:"order_products" validate:"omitempty,min=1,dive"`
}

// OrderFilter - query-параметры выборки заказов
type OrderFilter struct {
	Status   models.OrderStatus `form:"status" validate:"omitempty,is-order-status"`
	MinPrice *float64           `form:"min_price"`
	MaxPrice *float64           `form:"max_price"`
}
