package deleting

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() (*fiber.App, *MockCatalog) {
	catalog := threeSongs()
	app := fiber.New()
	RegisterRoutes(app, NewService(&sliceStack{}, catalog, nil))
	return app, catalog
}

func TestStageHandler_StatusCodes(t *testing.T) {
	app, _ := newTestApp()

	tests := []struct {
		path string
		want int
	}{
		{"/deleting/stage/1", fiber.StatusOK},
		{"/deleting/stage/1", fiber.StatusConflict},
		{"/deleting/stage/nope", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("POST", tt.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tt.want {
			t.Errorf("POST %s: status = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}

func TestUndoHandler_Empty(t *testing.T) {
	app, _ := newTestApp()
	resp, err := app.Test(httptest.NewRequest("POST", "/deleting/undo", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestFlushHandler(t *testing.T) {
	app, catalog := newTestApp()
	for _, id := range []string{"1", "3"} {
		app.Test(httptest.NewRequest("POST", "/deleting/stage/"+id, nil))
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/deleting/flush", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	var result FlushResult
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("bad body %s: %v", body, err)
	}
	if result.Deleted != 2 || len(catalog.songs) != 1 {
		t.Errorf("result = %+v, remaining = %d", result, len(catalog.songs))
	}
	if result.Songs[0].ID != "3" {
		t.Errorf("first deleted = %s, want 3", result.Songs[0].ID)
	}
}

func TestDeleteNowHandler(t *testing.T) {
	app, _ := newTestApp()
	resp, _ := app.Test(httptest.NewRequest("DELETE", "/deleting/songs/2", nil))
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest("DELETE", "/deleting/songs/2", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
