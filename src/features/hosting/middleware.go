package hosting

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestRecorder receives one observation per served request.
type RequestRecorder interface {
	RecordRequest(feature, client string, status int, elapsed time.Duration)
}

// features maps the first path segment to the feature that owns the route.
var features = map[string]string{
	"library":   "library",
	"adding":    "adding",
	"editing":   "editing",
	"deleting":  "deleting",
	"import":    "importing",
	"importing": "importing",
	"queue":     "adding",
	"stats":     "metrics",
	"metrics":   "metrics",
	"config":    "config",
	"settings":  "config",
	"ui":        "ui",
	"health":    "health",
}

// featureOf names the feature serving path. The UI partials live under
// /ui/<feature>/..., so they are attributed to that feature.
func featureOf(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if segments[0] == "" {
		return "ui"
	}
	if segments[0] == "ui" && len(segments) > 1 {
		if f, ok := features[segments[1]]; ok {
			return f
		}
	}
	if f, ok := features[segments[0]]; ok {
		return f
	}
	return "static"
}

// clientOf tells HTMX swaps apart from API calls and plain page loads.
func clientOf(c *fiber.Ctx) string {
	switch {
	case c.Get("HX-Request") == "true":
		return "htmx"
	case strings.Contains(c.Get("Accept"), "text/html"):
		return "browser"
	default:
		return "api"
	}
}

// RequestLogger logs every request tagged with its feature and client kind
// and hands the outcome to recorder when one is set. With debug on, HTMX
// triggers and targets are logged too.
func RequestLogger(recorder RequestRecorder, debug bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil && status < fiber.StatusBadRequest {
			status = fiber.StatusInternalServerError
		}

		feature := featureOf(c.Path())
		client := clientOf(c)
		attrs := []any{
			"feature", feature,
			"client", client,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", elapsed.String(),
		}
		if debug && client == "htmx" {
			attrs = append(attrs,
				"hx_trigger", c.Get("HX-Trigger"),
				"hx_target", c.Get("HX-Target"),
				"hx_response_trigger", string(c.Response().Header.Peek("HX-Trigger")),
			)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			slog.Error("HTTP request", append(attrs, "error", err)...)
		case status >= fiber.StatusBadRequest:
			slog.Warn("HTTP request", attrs...)
		default:
			slog.Debug("HTTP request", attrs...)
		}

		if recorder != nil {
			recorder.RecordRequest(feature, client, status, elapsed)
		}
		return err
	}
}
