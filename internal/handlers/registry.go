package handlers

// AppHandlers - контейнер всех HTTP-обработчиков приложения
type AppHandlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Order   *OrderHandler
	Role    *RoleHandler
	Product *ProductHandler
}
