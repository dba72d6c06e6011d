package middleware

import (
	"formflow/internal/entity"

	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey = "auth_user_id"
	contextRoleKey   = "auth_role"
	contextEmailKey  = "auth_email"
)

func SetAuthContext(c echo.Context, userID uint, role entity.Role, email string) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextRoleKey, role)
	c.Set(contextEmailKey, email)
}

func UserIDFromContext(c echo.Context) (uint, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uint)
	return userID, ok
}

func RoleFromContext(c echo.Context) (entity.Role, bool) {
	value := c.Get(contextRoleKey)
	role, ok := value.(entity.Role)
	return role, ok
}

func EmailFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextEmailKey)
	email, ok := value.(string)
	return email, ok
}
