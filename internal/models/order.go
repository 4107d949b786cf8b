package models

import "time"

type Order struct {
	BaseModel
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalPrice float64     `gorm:"not null;default:0" json:"total_price"`
	DeletedAt  *time.Time  `gorm:"index" json:"deleted_at"` // null = заказ живой

	// Relations
	OrderProducts []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_products"`
}

// OrderProduct - строка заказа. Составной ключ (order_id, product_id).
type OrderProduct struct {
	OrderID   uint `gorm:"primaryKey" json:"-"`
	ProductID uint `gorm:"primaryKey" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Product struct {
	BaseModel
	Name  string  `gorm:"not null" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
}
