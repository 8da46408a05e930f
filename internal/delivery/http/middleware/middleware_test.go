package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"skillpath/internal/pkg/logger"
	"skillpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

func newApp(h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(logger.Nop()).Middleware())
	app.Use(NewErrorMiddleware(logger.Nop()).Middleware())
	app.Get("/", h)
	return app
}

func call(t *testing.T, app *fiber.App) (int, response.SemanticResponse, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	return resp.StatusCode, sr, resp.Header.Get(HeaderRequestID)
}

func TestErrorMiddleware_AppError(t *testing.T) {
	app := newApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "User not found", nil, errors.New("no rows"))
	})
	status, sr, rid := call(t, app)
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "User not found", sr.Message)
	require.NotEmpty(t, rid)
}

func TestErrorMiddleware_ServerAppErrorIncludesCause(t *testing.T) {
	app := newApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "Extension created no new tasks", map[string]int{"phase": 3}, errors.New("0 rows"))
	})
	status, sr, _ := call(t, app)
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "Extension created no new tasks: 0 rows", sr.Message)
	require.Equal(t, map[string]any{"phase": float64(3)}, sr.Data)
}

func TestErrorMiddleware_MasksUnknownErrorsAndPanics(t *testing.T) {
	status, sr, _ := call(t, newApp(func(c fiber.Ctx) error {
		return errors.New("dial tcp: connection refused")
	}))
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, response.MessageInternalServerError, sr.Message)

	status, sr, _ = call(t, newApp(func(c fiber.Ctx) error {
		panic("boom")
	}))
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, response.MessageInternalServerError, sr.Message)
}

func TestErrorMiddleware_FiberError(t *testing.T) {
	status, sr, _ := call(t, newApp(func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user_id")
	}))
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "invalid user_id", sr.Message)
}

func TestAccessLog_KeepsIncomingRequestID(t *testing.T) {
	app := newApp(func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "", nil)
	})
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "abc", resp.Header.Get(HeaderRequestID))
}
