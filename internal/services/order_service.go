package services

import (
	"context"
	"time"

	"github.com/Kentemie/Nimbus/internal/events"
	"github.com/Kentemie/Nimbus/internal/logger"
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/repositories"
	"github.com/Kentemie/Nimbus/internal/services/dto"
	"github.com/Kentemie/Nimbus/pkg/apperrors"
)

// publishTimeout ограничивает отправку события после завершения HTTP-запроса
const publishTimeout = 5 * time.Second

type OrderService interface {
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetFiltered(ctx context.Context, userID uint, filter *dto.OrderFilter) ([]models.Order, error)
	Create(ctx context.Context, userID uint, req *dto.OrderCreate) (*models.Order, error)
	Update(ctx context.Context, id uint, req *dto.OrderUpdate) (*models.Order, error)
	SoftDelete(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
}

type OrderServiceImpl struct {
	orderRepo repositories.OrderRepository
	cacheRepo repositories.OrderCacheRepository
	notifier  events.Notifier
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	cacheRepo repositories.OrderCacheRepository,
	notifier events.Notifier,
) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
		cacheRepo: cacheRepo,
		notifier:  notifier,
	}
}

// GetByID - чтение заказа через кеш.
// Попадание отдается как есть, без сверки с базой; промах дочитывается
// из базы и кладется в кеш. Недоступность кеша деградирует до чтения из базы.
func (s *OrderServiceImpl) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	cached, err := s.cacheRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Warn("order cache read failed", "error", err.Error(), "order_id", id)
	}
	if cached != nil {
		return cached, nil
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.cacheRepo.Set(ctx, order); err != nil {
		logger.FromContext(ctx).Warn("order cache write failed", "error", err.Error(), "order_id", id)
	}

	return order, nil
}

// GetFiltered - списочное чтение, всегда мимо кеша
func (s *OrderServiceImpl) GetFiltered(_ context.Context, userID uint, filter *dto.OrderFilter) ([]models.Order, error) {
	repoFilter := repositories.OrderFilter{}
	if filter != nil {
		repoFilter.Status = filter.Status
		repoFilter.MinPrice = filter.MinPrice
		repoFilter.MaxPrice = filter.MaxPrice
	}

	orders, err := s.orderRepo.GetFiltered(userID, repoFilter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return orders, nil
}

func (s *OrderServiceImpl) Create(ctx context.Context, userID uint, req *dto.OrderCreate) (*models.Order, error) {
	order := &models.Order{
		UserID:        userID,
		Status:        models.OrderStatusPending,
		TotalPrice:    req.TotalPrice,
		OrderProducts: buildOrderLines(req.OrderProducts),
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Кеш наполняется только после коммита в базу
	if err := s.cacheRepo.Set(ctx, order); err != nil {
		logger.FromContext(ctx).Warn("order cache write failed", "error", err.Error(), "order_id", order.ID)
	}

	return order, nil
}

// Update - частичное обновление заказа.
// Статус читается из базы, а не из кеша: подтвержденный заказ заморожен
// для любых правок. Смена статуса порождает событие, его отправка
// асинхронна и не влияет на результат запроса.
func (s *OrderServiceImpl) Update(ctx context.Context, id uint, req *dto.OrderUpdate) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if order.Status == models.OrderStatusConfirmed {
		return nil, apperrors.ErrOrderIsConfirmed
	}

	oldStatus := order.Status

	updates := make(map[string]interface{})
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.TotalPrice != nil {
		updates["total_price"] = *req.TotalPrice
	}

	var lines []models.OrderProduct
	if req.OrderProducts != nil {
		lines = buildOrderLines(req.OrderProducts)
	}

	updated, err := s.orderRepo.Update(order, updates, lines)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.cacheRepo.Set(ctx, updated); err != nil {
		logger.FromContext(ctx).Warn("order cache write failed", "error", err.Error(), "order_id", updated.ID)
	}

	if req.Status != nil && *req.Status != oldStatus {
		s.publishStatusChange(updated.ID, oldStatus, updated.Status)
	}

	return updated, nil
}

// SoftDelete - идемпотентное мягкое удаление: отсутствующий или уже
// удаленный заказ не является ошибкой
func (s *OrderServiceImpl) SoftDelete(ctx context.Context, id uint) error {
	if err := s.orderRepo.SoftDelete(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.cacheRepo.Delete(ctx, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *OrderServiceImpl) HardDelete(ctx context.Context, id uint) error {
	if err := s.orderRepo.HardDelete(id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.cacheRepo.Delete(ctx, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// publishStatusChange отправляет событие в фоне. Контекст запроса к этому
// моменту может быть уже отменен, поэтому берется свой с таймаутом.
func (s *OrderServiceImpl) publishStatusChange(orderID uint, oldStatus, newStatus models.OrderStatus) {
	event := events.OrderStatusEvent{
		OrderID:   orderID,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.notifier.PublishOrderStatusChange(ctx, event); err != nil {
			logger.WithError(err).Error(
				"order status event publish failed",
				"order_id", orderID,
				"old_status", oldStatus,
				"new_status", newStatus,
			)
		}
	}()
}

func buildOrderLines(items []dto.OrderProductCreateUpdate) []models.OrderProduct {
	lines := make([]models.OrderProduct, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		lines = append(lines, models.OrderProduct{
			ProductID: item.ProductID,
			Quantity:  quantity,
		})
	}
	return lines
}
