package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/schoolboard-api/internal/middleware"
	"github.com/noah-isme/schoolboard-api/internal/utils"
)

// IdentityUser is the public view of the caller.
type IdentityUser struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	Role  string   `json:"role"`
}

// IdentityResponse is returned by GET /me.
type IdentityResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *IdentityUser `json:"user"`
}

// Me reports who the bearer token belongs to.
func Me(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return utils.SendSuccess(c, "anonymous", IdentityResponse{Authenticated: false})
	}

	roles := identity.Roles
	if roles == nil {
		roles = []string{}
	}
	return utils.SendSuccess(c, "identity retrieved", IdentityResponse{
		Authenticated: true,
		User: &IdentityUser{
			Name:  identity.Name,
			Email: identity.Email,
			Roles: roles,
			Role:  identity.Role,
		},
	})
}
