package config

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestGetConfigRoute(t *testing.T) {
	cfg := createDefaultConfig()
	cfg.Telegram.Token = "secret-token"
	app := fiber.New()
	RegisterRoutes(app, NewManager(cfg, ""))

	tests := []struct {
		query       string
		status      int
		contentType string
	}{
		{"", fiber.StatusOK, "text/yaml"},
		{"?fmt=json", fiber.StatusOK, "application/json"},
		{"?fmt=toml", fiber.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", "/config"+tt.query, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("GET /config%s status = %d, want %d", tt.query, resp.StatusCode, tt.status)
		}
		if tt.contentType != "" && !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType) {
			t.Errorf("GET /config%s content type = %q", tt.query, resp.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(body), "secret-token") {
			t.Errorf("GET /config%s leaked the token", tt.query)
		}
	}
}
