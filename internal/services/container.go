package services

// ServiceContainer - контейнер всех сервисов приложения
type ServiceContainer struct {
	User    UserService
	Order   OrderService
	Role    RoleService
	Product ProductService
}
