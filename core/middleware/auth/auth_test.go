package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	tests := []struct {
		name   string
		apiKey string
		header string
		path   string
		want   int
	}{
		{"Disabled", "", "", "/inventory", 200},
		{"Missing Key", "secret", "", "/inventory", 401},
		{"Wrong Key", "secret", "nope", "/inventory", 401},
		{"Valid Key", "secret", "secret", "/inventory", 200},
		{"Skipped Path", "secret", "", "/metrics", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(Config{ApiKey: tt.apiKey, Skip: []string{"/metrics"}}))
			app.Get("/inventory", ok)
			app.Get("/metrics", ok)

			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
