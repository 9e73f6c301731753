package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/artem13815/fundwatch/api/http"
	"github.com/artem13815/fundwatch/api/http/handlers"
	"github.com/artem13815/fundwatch/pkg/auth"
	"github.com/artem13815/fundwatch/pkg/health"
	memrepo "github.com/artem13815/fundwatch/pkg/repository/memory"
	"github.com/artem13815/fundwatch/pkg/security/jwt"
	"github.com/artem13815/fundwatch/pkg/watchlist"
)

const (
	testSecret = "test-secret"
	testIssuer = "fundwatch"
)

// newTestApp wires the service exactly like cmd/server, but over fresh
// in-memory stores so each test is isolated.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()

	jwtGen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	authUC := auth.NewAuthService(memrepo.NewUserRepository(), jwtGen)
	watchlistUC := watchlist.NewService(memrepo.NewSavedFundRepository())

	apihttp.Register(app,
		handlers.NewAuthHandler(authUC),
		handlers.NewSavedFundsHandler(watchlistUC),
		handlers.NewHealthHandler(health.NewService()),
		jwt.NewAuthMiddleware(testSecret, testIssuer),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App, email, password, name string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": email, "password": password, "name": name,
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginMe(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": "a@x.com", "password": "secret1", "name": "Alice",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "Alice", user["name"])
	token := body["token"].(string)

	resp, body = doJSON(t, app, "GET", "/api/auth/me", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "Alice", body["name"])

	resp, body = doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": "not-an-email", "password": "secret1", "name": "Alice",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email format", body["message"])

	resp, body = doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": "a@x.com", "password": "short", "name": "Alice",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password must be at least 6 characters", body["message"])

	registerUser(t, app, "a@x.com", "secret1", "Alice")
	resp, body = doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email": "a@x.com", "password": "secret2", "name": "Imposter",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists with this email", body["message"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "a@x.com", "secret1", "Alice")

	resp, wrongPass := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": "a@x.com", "password": "wrong-password",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp, unknown := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, wrongPass["message"], unknown["message"])
	assert.Equal(t, "Invalid email or password", unknown["message"])
}

func TestAuthGate(t *testing.T) {
	app := newTestApp(t)

	// Missing token
	resp, body := doJSON(t, app, "GET", "/api/saved-funds", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access token required", body["message"])

	// Garbage token
	resp, body = doJSON(t, app, "GET", "/api/saved-funds", "not.a.jwt", nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["message"])

	// Expired token
	expiredGen := jwt.NewGenerator(testSecret, testIssuer, -time.Minute)
	expired, err := expiredGen.Generate(context.Background(), auth.User{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)
	resp, body = doJSON(t, app, "GET", "/api/saved-funds", expired, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestSavedFundsFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "a@x.com", "secret1", "Alice")

	// Save
	resp, body := doJSON(t, app, "POST", "/api/saved-funds", token, fiber.Map{
		"fundId": "119551", "fundName": "Alpha Growth Fund", "fundCategory": "Equity",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "119551", body["fundId"])
	assert.Equal(t, "Equity", body["fundCategory"])

	// Duplicate save
	resp, body = doJSON(t, app, "POST", "/api/saved-funds", token, fiber.Map{
		"fundId": "119551", "fundName": "Alpha Growth Fund",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Fund is already saved", body["message"])

	// Check → true
	resp, body = doJSON(t, app, "GET", "/api/saved-funds/119551/check", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isSaved"])

	// List has exactly the one entry
	req := httptest.NewRequest("GET", "/api/saved-funds", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, listResp.StatusCode)
	var funds []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&funds))
	require.Len(t, funds, 1)
	assert.Equal(t, "119551", funds[0]["fundId"])

	// Remove
	resp, body = doJSON(t, app, "DELETE", "/api/saved-funds/119551", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Fund removed from saved list", body["message"])

	// Check → false
	resp, body = doJSON(t, app, "GET", "/api/saved-funds/119551/check", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["isSaved"])

	// Second remove → 404
	resp, body = doJSON(t, app, "DELETE", "/api/saved-funds/119551", token, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Saved fund not found", body["message"])
}

func TestSaveValidation(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "a@x.com", "secret1", "Alice")

	resp, body := doJSON(t, app, "POST", "/api/saved-funds", token, fiber.Map{
		"fundName": "No ID",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "fundId and fundName are required", body["message"])
}

func TestWatchlistsAreIsolatedPerUser(t *testing.T) {
	app := newTestApp(t)
	alice := registerUser(t, app, "a@x.com", "secret1", "Alice")
	bob := registerUser(t, app, "b@x.com", "secret2", "Bob")

	resp, _ := doJSON(t, app, "POST", "/api/saved-funds", alice, fiber.Map{
		"fundId": "119551", "fundName": "Alpha Growth Fund",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/saved-funds/119551/check", bob, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["isSaved"])

	resp, body = doJSON(t, app, "DELETE", "/api/saved-funds/119551", bob, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Saved fund not found", body["message"])
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, body = doJSON(t, app, "GET", "/api/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])
}
