package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому *gorm.DB лежит в gin.Context
const DBContextKey = contextKey("db")

// Ключи, которые AuthMiddleware кладет в gin.Context
const (
	UserIDKey = "userID"
	RoleKey   = "role"
	EmailKey  = "email"
)
