package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autonomo-pro/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func setupApp() *fiber.App {
	app := fiber.New()
	app.Get("/protegida", AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c)})
	})
	return app
}

func TestAuthMiddleware_SinCabeceraDevuelve401(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/protegida", nil)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoIncorrectoDevuelve401(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalidoDevuelve401(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretoDistintoDevuelve401(t *testing.T) {
	app := setupApp()

	token, err := jwt.Generate("otro-secreto", "user-1", "autonomo-pro", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoDevuelve401(t *testing.T) {
	app := setupApp()

	token, err := jwt.Generate(testSecret, "user-1", "autonomo-pro", -5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoPasaYExponeUserID(t *testing.T) {
	app := setupApp()

	token, err := jwt.Generate(testSecret, "user-1", "autonomo-pro", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWT_GenerateYParseRoundtrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-42", "autonomo-pro", 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}
