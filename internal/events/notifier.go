package events

import "context"

// OrderStatusEvent - событие смены статуса заказа
type OrderStatusEvent struct {
	OrderID   uint   `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// Notifier публикует события смены статуса во внешний поток.
// Доставка at-least-once; ядро не ждет подтверждения консьюмеров,
// только подтверждения продюсера.
type Notifier interface {
	PublishOrderStatusChange(ctx context.Context, event OrderStatusEvent) error
	Close() error
}
