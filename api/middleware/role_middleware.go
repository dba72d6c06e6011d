package middleware

import (
	"net/http"

	"formflow/internal/entity"

	"github.com/labstack/echo/v4"
)

type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirect
	DecisionDeny
)

// Decision is the authorization outcome for one request: allow it, deny it
// outright, or send the principal to their own landing area.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// Authorize gates a request. No principal is a Deny; a valid principal
// whose role is outside the required set is valid but misrouted and gets a
// redirect to their default area; an empty required set admits everyone
// authenticated.
func Authorize(role entity.Role, authenticated bool, required ...entity.Role) Decision {
	if !authenticated {
		return Decision{Kind: DecisionDeny}
	}
	if len(required) == 0 {
		return Decision{Kind: DecisionAllow}
	}
	for _, r := range required {
		if role == r {
			return Decision{Kind: DecisionAllow}
		}
	}
	return Decision{Kind: DecisionRedirect, Target: DefaultTarget(role)}
}

// DefaultTarget maps a role to its landing area.
func DefaultTarget(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return "/dashboard/admin"
	case entity.RoleClient:
		return "/dashboard/client"
	case entity.RoleFournisseur:
		return "/dashboard/fournisseur"
	}
	return "/dashboard"
}

// RequireRoles runs after RequireAuth and translates the Decision to the
// wire: Deny becomes 401, Redirect becomes a 303 carrying the target.
func RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleFromContext(c)
			decision := Authorize(role, ok, roles...)
			switch decision.Kind {
			case DecisionAllow:
				return next(c)
			case DecisionRedirect:
				return c.JSON(http.StatusSeeOther, map[string]string{"redirect": decision.Target})
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
		}
	}
}
