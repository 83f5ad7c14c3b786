package auth

import "creatorhub_backend/internal/models"

// HasRole - входит ли роль в список разрешенных
func HasRole(role string, allowed ...models.UserRole) bool {
	for _, r := range allowed {
		if models.UserRole(role) == r {
			return true
		}
	}
	return false
}

// IsAdmin - единственная проверка административного доступа
func IsAdmin(role string) bool {
	return HasRole(role, models.UserRoleAdmin)
}
