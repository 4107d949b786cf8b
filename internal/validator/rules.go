package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/services/dto"
)

// registerCustomRules регистрирует кастомные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска,
			// приложение не должно стартовать.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-order-status': значение входит в набор статусов заказа
	mustRegister("is-order-status", validateOrderStatus)

	// Правило "оба или никакой" для order_products / total_price:
	// частичное обновление одного из них без другого отклоняется
	// на границе, до бизнес-логики.
	v.RegisterStructValidation(validateOrderUpdate, dto.OrderUpdate{})
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return models.IsValidOrderStatus(models.OrderStatus(fl.Field().String()))
}

func validateOrderUpdate(sl validator.StructLevel) {
	update := sl.Current().Interface().(dto.OrderUpdate)

	hasLines := update.OrderProducts != nil
	hasTotal := update.TotalPrice != nil

	if hasLines != hasTotal {
		sl.ReportError(update.OrderProducts, "order_products", "OrderProducts", "order-lines-and-total", "")
		sl.ReportError(update.TotalPrice, "total_price", "TotalPrice", "order-lines-and-total", "")
	}
}
