package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, handler fiber.Handler) (int, APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)

	var payload APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestSendSuccess(t *testing.T) {
	status, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "created", map[string]string{"id": "1"})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, payload.Success)
	assert.Equal(t, "created", payload.Message)
	assert.NotNil(t, payload.Data)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	_, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "", nil)
	})

	assert.Equal(t, "success", payload.Message)
}

func TestSendError(t *testing.T) {
	status, payload := runHandler(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "missing")
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, payload.Success)
	assert.Equal(t, "missing", payload.Message)
	assert.Nil(t, payload.Data)
}
