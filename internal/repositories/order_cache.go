package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kentemie/Nimbus/internal/models"
)

// OrderCacheRepository - кеш заказов поверх Redis.
// Значение - полная сериализация заказа со строками.
// TTL не выставляется: записи живут до явной инвалидации.
type OrderCacheRepository interface {
	Get(ctx context.Context, orderID uint) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, orderID uint) error
}

type OrderCacheRepositoryImpl struct {
	rdb       *redis.Client
	opTimeout time.Duration
}

func NewOrderCacheRepository(rdb *redis.Client, opTimeout time.Duration) OrderCacheRepository {
	return &OrderCacheRepositoryImpl{
		rdb:       rdb,
		opTimeout: opTimeout,
	}
}

// Get возвращает (nil, nil) при промахе
func (r *OrderCacheRepositoryImpl) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	data, err := r.rdb.Get(ctx, orderKey(orderID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderCacheRepositoryImpl) Set(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	return r.rdb.Set(ctx, orderKey(order.ID), data, 0).Err()
}

func (r *OrderCacheRepositoryImpl) Delete(ctx context.Context, orderID uint) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	return r.rdb.Del(ctx, orderKey(orderID)).Err()
}

func orderKey(orderID uint) string {
	return fmt.Sprintf("order:%d", orderID)
}
