package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/schoolboard-api/internal/utils"
)

// Roles understood by the API, ordered from most to least privileged.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// DefaultRolesClaim is the namespaced claim identity providers use for roles.
const DefaultRolesClaim = "https://my-app.com/roles"

var rolePrecedence = []string{RoleAdmin, RoleTeacher, RoleStudent}

// Identity describes the authenticated caller.
type Identity struct {
	Subject string
	Name    string
	Email   string
	Roles   []string
	Role    string
}

// JWTProtected returns a middleware that validates HMAC signed bearer tokens and
// binds the caller identity to the request. rolesClaim names the extra claim
// that carries the role list; empty falls back to DefaultRolesClaim.
func JWTProtected(secret, rolesClaim string) fiber.Handler {
	if strings.TrimSpace(rolesClaim) == "" {
		rolesClaim = DefaultRolesClaim
	}

	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		identity := identityFromClaims(claims, rolesClaim)
		c.Locals("user_id", identity.Subject)
		c.Locals("user_name", identity.Name)
		c.Locals("user_email", identity.Email)
		c.Locals("user_roles", identity.Roles)
		c.Locals("user_role", identity.Role)

		return c.Next()
	}
}

// IdentityFromContext returns the caller identity bound by JWTProtected.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	subject, ok := c.Locals("user_id").(string)
	if !ok {
		return Identity{}, false
	}
	identity := Identity{Subject: subject}
	identity.Name, _ = c.Locals("user_name").(string)
	identity.Email, _ = c.Locals("user_email").(string)
	identity.Roles, _ = c.Locals("user_roles").([]string)
	identity.Role, _ = c.Locals("user_role").(string)
	return identity, true
}

// UserIDFromContext returns the token subject, or an empty string for anonymous requests.
func UserIDFromContext(c *fiber.Ctx) string {
	if subject, ok := c.Locals("user_id").(string); ok {
		return subject
	}
	return ""
}

// EffectiveRole picks the most privileged known role. Unknown roles are ignored
// and an empty string means the caller holds none of them.
func EffectiveRole(roles []string) string {
	held := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		held[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	for _, role := range rolePrecedence {
		if _, ok := held[role]; ok {
			return role
		}
	}
	return ""
}

func identityFromClaims(claims jwt.MapClaims, rolesClaim string) Identity {
	identity := Identity{
		Subject: claimString(claims, "sub", "user_id", "id"),
		Name:    claimString(claims, "name", "nickname"),
		Email:   claimString(claims, "email"),
	}

	for _, key := range []string{rolesClaim, "roles", "role"} {
		if value, ok := claims[key]; ok {
			identity.Roles = append(identity.Roles, normalizeRoles(value)...)
		}
	}
	identity.Roles = dedupe(identity.Roles)
	identity.Role = EffectiveRole(identity.Roles)
	return identity
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

func normalizeRoles(value interface{}) []string {
	switch v := value.(type) {
	case string:
		if role := strings.ToLower(strings.TrimSpace(v)); role != "" {
			return []string{role}
		}
	case []interface{}:
		roles := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				if role := strings.ToLower(strings.TrimSpace(str)); role != "" {
					roles = append(roles, role)
				}
			}
		}
		return roles
	}
	return nil
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
