package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Word   string `validate:"required"`
		Offset int    `validate:"min=0"`
	}
	err := validator.New().Struct(payload{Offset: -1})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Equal(t, []string{
		"Field 'Word' failed on the 'required' tag",
		"Field 'Offset' failed on the 'min' tag (value: 0)",
	}, msgs)

	assert.Equal(t, []string{"plain"}, FormatValidationErrors(errors.New("plain")))
	assert.Empty(t, FormatValidationErrors(nil))
}

func TestRespondUncached(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return RespondUncached(c, fiber.Map{"n": 1}, nil) })
	app.Get("/fail", func(c *fiber.Ctx) error { return RespondUncached(c, nil, errors.New("db down")) })

	tests := []struct {
		path   string
		status int
		body   map[string]interface{}
	}{
		{"/ok", fiber.StatusOK, map[string]interface{}{"n": float64(1)}},
		{"/fail", fiber.StatusInternalServerError, map[string]interface{}{"error": "db down"}},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode)
		assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, tt.body, body)
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "cat", SanitizeInput("  cat\n"))
}
