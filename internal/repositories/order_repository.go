package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Kentemie/Nimbus/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderFilter - опциональные условия выборки заказов (конъюнкция).
// Ценовые границы включительные.
type OrderFilter struct {
	Status   models.OrderStatus
	MinPrice *float64
	MaxPrice *float64
}

type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetFiltered(userID uint, filter OrderFilter) ([]models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order, updates map[string]interface{}, lines []models.OrderProduct) (*models.Order, error)
	SoftDelete(id uint) error
	HardDelete(id uint) error
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// GetByID возвращает живой (не удаленный мягко) заказ со строками
// и вложенными продуктами за одну логическую выборку.
func (r *OrderRepositoryImpl) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("OrderProducts.Product").
		First(&order, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) GetFiltered(userID uint, filter OrderFilter) ([]models.Order, error) {
	query := r.db.Preload("OrderProducts.Product").
		Where("user_id = ? AND deleted_at IS NULL", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinPrice != nil {
		query = query.Where("total_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("total_price <= ?", *filter.MaxPrice)
	}

	var orders []models.Order
	err := query.Order("id").Find(&orders).Error
	return orders, err
}

// Create сохраняет заказ вместе со строками и перечитывает его
// с вложенными продуктами.
func (r *OrderRepositoryImpl) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}

	created, err := r.GetByID(order.ID)
	if err != nil {
		return err
	}

	*order = *created
	return nil
}

// Update применяет частичное обновление полей; lines != nil означает
// полную замену строк заказа. Одна транзакция на вызов.
func (r *OrderRepositoryImpl) Update(order *models.Order, updates map[string]interface{}, lines []models.OrderProduct) (*models.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			result := tx.Model(order).Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrOrderNotFound
			}
		}

		if lines != nil {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderProduct{}).Error; err != nil {
				return err
			}
			for i := range lines {
				lines[i].OrderID = order.ID
			}
			if len(lines) > 0 {
				if err := tx.Create(&lines).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(order.ID)
}

// SoftDelete проставляет deleted_at. Отсутствие записи не считается
// ошибкой - операция административная и идемпотентная.
func (r *OrderRepositoryImpl) SoftDelete(id uint) error {
	return r.db.Model(&models.Order{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now().UTC()).Error
}

// HardDelete физически удаляет заказ; строки уходят каскадом
// по внешнему ключу.
func (r *OrderRepositoryImpl) HardDelete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	})
}
