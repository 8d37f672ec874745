package hosting

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/contre95/songshelf/src/features/adding"
	"github.com/contre95/songshelf/src/features/config"
	"github.com/contre95/songshelf/src/features/deleting"
	"github.com/contre95/songshelf/src/features/editing"
	"github.com/contre95/songshelf/src/features/importing"
	"github.com/contre95/songshelf/src/features/library"
	"github.com/contre95/songshelf/src/features/metrics"
	"github.com/contre95/songshelf/src/infra/catalog"
	"github.com/contre95/songshelf/src/infra/database"
	"github.com/contre95/songshelf/src/infra/queue"
	"github.com/contre95/songshelf/src/infra/stack"
	"github.com/contre95/songshelf/src/infra/tag"
	"github.com/contre95/songshelf/src/music"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.NewSqliteLibrary(filepath.Join(t.TempDir(), "songs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Logger.Level = "info"
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	manager := config.NewManager(cfg, "")

	songs := catalog.NewCachedLibrary(db)
	additions := queue.NewInMemoryQueue()
	deletions := stack.NewInMemoryStack()
	metricsService := metrics.NewService(db, additions, deletions)
	collector := metrics.NewCollector(metricsService)

	addingService := adding.NewService(additions, songs, collector)
	services := Services{
		Library:   library.NewService(songs),
		Adding:    addingService,
		Editing:   editing.NewService(songs, tag.NewTagWriter(), manager, collector),
		Deleting:  deleting.NewService(deletions, songs, collector),
		Importing: importing.NewService(tag.NewTagReader(), addingService),
		Metrics:   metricsService,
		Collector: collector,
	}
	return NewServer(manager, services, filepath.Join("..", "..", "..", "views"))
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestServer_Health(t *testing.T) {
	app := newTestServer(t).App()
	status, body := call(t, app, "GET", "/health", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body)
}

func TestServer_QueueProcessListDelete(t *testing.T) {
	app := newTestServer(t).App()

	for _, in := range []string{
		`{"title":"Yesterday","artist":"The Beatles"}`,
		`{"title":"Imagine","artist":"John Lennon","year":1971}`,
	} {
		status, body := call(t, app, "POST", "/adding/queue", in)
		require.Equal(t, fiber.StatusCreated, status, body)
	}

	status, body := call(t, app, "POST", "/adding/queue", `{"title":"","artist":"Nobody"}`)
	assert.Equal(t, fiber.StatusBadRequest, status, body)

	status, body = call(t, app, "POST", "/adding/process", "")
	require.Equal(t, fiber.StatusOK, status)
	var result adding.ProcessResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Failed)

	status, body = call(t, app, "GET", "/library/songs", "")
	require.Equal(t, fiber.StatusOK, status)
	var listing struct {
		Songs []*music.Song `json:"songs"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	require.Len(t, listing.Songs, 2)
	assert.Equal(t, "Imagine", listing.Songs[0].Title)
	assert.Equal(t, "Yesterday", listing.Songs[1].Title)

	id := listing.Songs[0].ID
	status, _ = call(t, app, "POST", "/deleting/stage/"+id, "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = call(t, app, "POST", "/deleting/stage/"+id, "")
	assert.Equal(t, fiber.StatusConflict, status)

	// staged songs stay in the store until flushed
	_, body = call(t, app, "GET", "/library/songs/count", "")
	assert.Contains(t, body, "2")

	status, _ = call(t, app, "POST", "/deleting/flush", "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = call(t, app, "GET", "/library/songs/"+id, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestServer_PrometheusEndpoint(t *testing.T) {
	app := newTestServer(t).App()
	call(t, app, "POST", "/adding/queue", `{"title":"Imagine","artist":"John Lennon"}`)

	status, body := call(t, app, "GET", "/metrics", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "songshelf_pending_additions 1")
	assert.Contains(t, body, "songshelf_songs_total 0")
	assert.Contains(t, body, `songshelf_http_requests_total{client="api",feature="adding",status="2xx"} 1`)
}
