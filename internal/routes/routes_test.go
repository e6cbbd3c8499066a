package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	app      *fiber.App
	registry *tenant.Registry
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestEnv(t, nil).app
}

// newTestEnv builds the full route tree. wrap, when set, replaces the
// store driver the registry uses.
func newTestEnv(t *testing.T, wrap func(database.Driver) database.Driver) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		DBDriver:  config.DriverSQLite,
		SQLiteDir: dir,
		DBName:    "control",
		JWTSecret: "routes-test-secret",
		JWTExpiry: time.Hour,
	}

	driver, err := database.NewDriver(cfg)
	require.NoError(t, err)
	control, err := database.Connect(context.Background(), driver, cfg)
	require.NoError(t, err)
	require.NoError(t, database.MigrateControl(control))

	if wrap != nil {
		driver = wrap(driver)
	}
	registry := tenant.NewRegistry(driver, control, database.PoolOptionsFrom(cfg))
	t.Cleanup(func() { registry.Close() })

	resolver := tenant.NewResolver(registry)
	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTExpiry)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	authService := services.NewAuthService(registry, tokens, hasher)
	adminService := services.NewAdminService(registry, tenant.NewProvisioner(registry), hasher, tenant.NewIdentifierGenerator(nil))
	userService := services.NewUserService(hasher)

	app := fiber.New()
	app.Use(middleware.Metrics())
	Setup(app, cfg, tokens, resolver,
		handlers.NewHealthHandler(registry),
		handlers.NewSuperAdminHandler(authService, adminService),
		handlers.NewAdminHandler(authService, adminService, userService),
		handlers.NewUserHandler(authService, userService),
	)
	return &testEnv{app: app, registry: registry}
}

type client struct {
	t   *testing.T
	app *fiber.App
}

// do sends a JSON request and decodes the JSON response into a map.
func (c *client) do(method, path, token string, body any, headers ...string) (int, map[string]any) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(c.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (c *client) login(path, email, password string, headers ...string) string {
	c.t.Helper()
	status, body := c.do("POST", path, "", map[string]string{"email": email, "password": password}, headers...)
	require.Equal(c.t, 200, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(c.t, token)
	return token
}

func TestTenantFlow(t *testing.T) {
	c := &client{t: t, app: newTestApp(t)}
	creds := map[string]string{"email": "a@x.com", "password": "Passw0rd!"}

	status, body := c.do("POST", "/api/super-admin/register", "", creds)
	require.Equal(t, 201, status, body)
	assert.Equal(t, float64(1), body["id"])

	status, body = c.do("POST", "/api/super-admin/register", "", map[string]string{"email": "z@x.com", "password": "Passw0rd!"})
	assert.Equal(t, 409, status)
	assert.Equal(t, "Super Admin already exists", body["message"])

	saToken := c.login("/api/super-admin/login", "a@x.com", "Passw0rd!")

	status, body = c.do("POST", "/api/super-admin/admins", saToken, map[string]string{
		"email": "b@x.com", "password": "Passw0rd!", "companyName": "Acme Co",
	})
	require.Equal(t, 201, status, body)
	acmeStore := body["databaseName"].(string)
	acmeID := uint(body["id"].(float64))
	assert.Regexp(t, `^tenant_acme_co_\d+$`, acmeStore)

	status, body = c.do("POST", "/api/super-admin/admins", saToken, map[string]string{
		"email": "b@x.com", "password": "Passw0rd!", "companyName": "Acme Again",
	})
	assert.Equal(t, 409, status)
	assert.Equal(t, "Admin with this email already exists", body["message"])

	status, body = c.do("POST", "/api/super-admin/admins", saToken, map[string]string{
		"email": "g@x.com", "password": "Passw0rd!", "companyName": "Globex",
	})
	require.Equal(t, 201, status, body)
	globexStore := body["databaseName"].(string)

	adminToken := c.login("/api/admins/login", "b@x.com", "Passw0rd!")

	status, body = c.do("GET", "/api/admins/profile", adminToken, nil)
	require.Equal(t, 200, status, body)
	assert.Equal(t, "Acme Co", body["companyName"])

	status, body = c.do("POST", "/api/admins/users", adminToken, map[string]string{
		"email": "c@x.com", "password": "Passw0rd!", "name": "Carl",
	})
	require.Equal(t, 201, status, body)
	assert.Equal(t, float64(acmeID), body["createdBy"])

	status, _ = c.do("POST", "/api/admins/users", adminToken, map[string]string{
		"email": "c@x.com", "password": "Passw0rd!", "name": "Carl",
	})
	assert.Equal(t, 409, status)

	t.Run("user login requires a known tenant", func(t *testing.T) {
		status, body := c.do("POST", "/api/users/login", "", map[string]string{"email": "c@x.com", "password": "Passw0rd!"})
		assert.Equal(t, 400, status)
		assert.Equal(t, "Tenant database not specified", body["message"])

		status, body = c.do("POST", "/api/users/login", "", map[string]string{"email": "c@x.com", "password": "Passw0rd!"},
			"X-Tenant-ID", "tenant_nobody_1")
		assert.Equal(t, 400, status)
		assert.Equal(t, "Invalid tenant", body["message"])

		status, body = c.do("POST", "/api/users/login", "", map[string]string{"email": "c@x.com", "password": "Passw0rd!"},
			"X-Tenant-ID", globexStore)
		assert.Equal(t, 401, status)
		assert.Equal(t, "Invalid credentials", body["message"])
	})

	userToken := c.login("/api/users/login", "c@x.com", "Passw0rd!", "X-Tenant-ID", acmeStore)

	status, body = c.do("GET", "/api/users/profile", userToken, nil)
	require.Equal(t, 200, status, body)
	assert.Equal(t, "Carl", body["name"])

	t.Run("roles are confined to their routes", func(t *testing.T) {
		status, _ := c.do("GET", "/api/admins/users", userToken, nil)
		assert.Equal(t, 403, status)
		status, _ = c.do("GET", "/api/super-admin/admins", adminToken, nil)
		assert.Equal(t, 403, status)
		status, _ = c.do("GET", "/api/users/profile", saToken, nil)
		assert.Equal(t, 403, status)
	})

	t.Run("missing bearer", func(t *testing.T) {
		status, body := c.do("GET", "/api/admins/profile", "", nil)
		assert.Equal(t, 401, status)
		assert.Equal(t, true, body["error"])
	})

	t.Run("wrong current password keeps the old one", func(t *testing.T) {
		status, body := c.do("PUT", "/api/users/change-password", userToken, map[string]string{
			"currentPassword": "Wrong0ne!", "newPassword": "N3wPassword",
		})
		assert.Equal(t, 400, status)
		assert.Equal(t, "Current password is incorrect", body["message"])

		c.login("/api/users/login", "c@x.com", "Passw0rd!", "X-Tenant-ID", acmeStore)
	})

	t.Run("validation errors name the field", func(t *testing.T) {
		status, body := c.do("POST", "/api/admins/users", adminToken, map[string]string{
			"email": "bad", "password": "weak", "name": "D",
		})
		assert.Equal(t, 400, status)
		fields, _ := body["errors"].(map[string]any)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.Contains(t, fields, "name")

		status, _ = c.do("GET", "/api/super-admin/admins/abc", saToken, nil)
		assert.Equal(t, 400, status)
	})

	status, body = c.do("PUT", fmt.Sprintf("/api/super-admin/admins/%d/status", acmeID), saToken, map[string]string{"status": "inactive"})
	require.Equal(t, 200, status, body)
	assert.Equal(t, "inactive", body["status"])

	status, _ = c.do("GET", "/api/admins/profile", adminToken, nil)
	assert.Equal(t, 403, status, "deactivation applies to tokens already issued")
	status, _ = c.do("GET", "/api/users/profile", userToken, nil)
	assert.Equal(t, 403, status)

	status, body = c.do("POST", "/api/admins/login", "", map[string]string{"email": "b@x.com", "password": "Passw0rd!"})
	assert.Equal(t, 401, status)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestHealthAndMetrics(t *testing.T) {
	c := &client{t: t, app: newTestApp(t)}

	status, body := c.do("GET", "/api/health", "", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["db"])

	resp, err := c.app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")
}

type failingStoreDriver struct {
	database.Driver
}

func (failingStoreDriver) CreateStore(context.Context, *gorm.DB, string) error {
	return errors.New("create database: disk full")
}

func TestCreateAdmin_RejectsOverlongPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	c := &client{t: t, app: env.app}
	creds := map[string]string{"email": "a@x.com", "password": "Passw0rd!"}
	status, _ := c.do("POST", "/api/super-admin/register", "", creds)
	require.Equal(t, 201, status)
	saToken := c.login("/api/super-admin/login", "a@x.com", "Passw0rd!")
	pools := env.registry.Len()

	status, body := c.do("POST", "/api/super-admin/admins", saToken, map[string]string{
		"email": "b@x.com", "password": "A1" + strings.Repeat("x", 80), "companyName": "Acme Co",
	})
	assert.Equal(t, 400, status)
	fields, _ := body["errors"].(map[string]any)
	assert.Equal(t, "Password must be at most 72 bytes long", fields["password"])
	assert.Equal(t, pools, env.registry.Len())

	status, _ = c.do("POST", "/api/super-admin/register", "", map[string]string{
		"email": "z@x.com", "password": "A1" + strings.Repeat("x", 80),
	})
	assert.Equal(t, 400, status)
}

func TestCreateAdmin_StoreFailureIsOpaque(t *testing.T) {
	env := newTestEnv(t, func(d database.Driver) database.Driver { return failingStoreDriver{d} })
	c := &client{t: t, app: env.app}
	status, _ := c.do("POST", "/api/super-admin/register", "", map[string]string{"email": "a@x.com", "password": "Passw0rd!"})
	require.Equal(t, 201, status)
	saToken := c.login("/api/super-admin/login", "a@x.com", "Passw0rd!")

	status, body := c.do("POST", "/api/super-admin/admins", saToken, map[string]string{
		"email": "b@x.com", "password": "Passw0rd!", "companyName": "Acme Co",
	})
	assert.Equal(t, 500, status)
	assert.Equal(t, "Database operation failed", body["message"])
	assert.NotContains(t, fmt.Sprint(body), "disk full")

	var admins int64
	require.NoError(t, env.registry.Control().Table("admins").Count(&admins).Error)
	assert.Zero(t, admins)
	assert.Zero(t, env.registry.Len())
}
