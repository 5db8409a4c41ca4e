package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func identityApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(testSecret, ""))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.JSON(identity)
	})
	return app
}

func TestJWTProtectedRejectsMissingHeader(t *testing.T) {
	resp, err := identityApp().Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsBadSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "auth0|1"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := identityApp().Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedBindsIdentityWithNamespacedRoles(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":   "auth0|42",
		"name":  "Grace Hopper",
		"email": "grace@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	claims[DefaultRolesClaim] = []interface{}{"Teacher", "admin"}
	signed := signToken(t, claims)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := identityApp().Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var identity Identity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&identity))
	require.Equal(t, "auth0|42", identity.Subject)
	require.Equal(t, "Grace Hopper", identity.Name)
	require.Equal(t, "grace@example.com", identity.Email)
	require.Equal(t, []string{"teacher", "admin"}, identity.Roles)
	require.Equal(t, RoleAdmin, identity.Role)
}

func TestEffectiveRolePrecedence(t *testing.T) {
	require.Equal(t, RoleAdmin, EffectiveRole([]string{"student", "admin", "teacher"}))
	require.Equal(t, RoleTeacher, EffectiveRole([]string{"student", "Teacher"}))
	require.Equal(t, RoleStudent, EffectiveRole([]string{"student"}))
	require.Equal(t, "", EffectiveRole([]string{"guest"}))
	require.Equal(t, "", EffectiveRole(nil))
}
