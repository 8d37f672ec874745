package importing

import (
	"context"
	"time"
)

// Watcher defines the interface for drop-folder watchers
type Watcher interface {
	Start(ctx context.Context, watchPath string) error
	Stop()
}

// FileEventType represents the type of file system event
type FileEventType string

const (
	FileCreated FileEventType = "created"
)

// FileEvent represents a settled file in the watched folder
type FileEvent struct {
	Path      string
	EventType FileEventType
	Timestamp time.Time
}
