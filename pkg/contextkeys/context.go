package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// IdentityContextKey - ключ для снапшота пользователя из JWT
	IdentityContextKey = contextKey("identity")

	// DBUserContextKey - ключ для свежей записи пользователя из БД
	DBUserContextKey = contextKey("db_user")

	// TokenContextKey - ключ для сырого bearer-токена (нужен для logout)
	TokenContextKey = contextKey("token")
)
