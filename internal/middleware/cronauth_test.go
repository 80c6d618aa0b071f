package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", func(c fiber.Ctx) error {
		return c.SendString("ok")
	}, BearerAuth(secret))
	return app
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", secret: "s3cret", authHeader: "Bearer s3cret", wantStatus: http.StatusOK},
		{name: "case-insensitive scheme", secret: "s3cret", authHeader: "bearer s3cret", wantStatus: http.StatusOK},
		{name: "missing header", secret: "s3cret", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", secret: "s3cret", authHeader: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", secret: "s3cret", authHeader: "Basic s3cret", wantStatus: http.StatusUnauthorized},
		{name: "token only", secret: "s3cret", authHeader: "s3cret", wantStatus: http.StatusUnauthorized},
		{name: "unset secret rejects everything", secret: "", authHeader: "Bearer ", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newProtectedApp(tt.secret)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
