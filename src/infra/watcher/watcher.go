package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/contre95/songshelf/src/features/importing"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 2 * time.Second

// Watcher monitors a drop folder and emits one event per audio file once it
// has stopped changing for the debounce period.
type Watcher struct {
	watcher   *fsnotify.Watcher
	watchPath string
	debounce  time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	running bool

	stopChan  chan struct{}
	eventChan chan<- importing.FileEvent
}

// NewWatcher creates a new file system watcher
func NewWatcher(eventChan chan<- importing.FileEvent, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:   watcher,
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching the path for new audio files
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	w.watchPath = watchPath
	slog.Info("Starting file watcher", "path", watchPath, "debounce", w.debounce)

	if err := w.watcher.Add(watchPath); err != nil {
		return err
	}

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	go w.watchLoop(ctx)

	slog.Info("File watcher started successfully")
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)

	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	w.watcher.Close()
}

// watchLoop processes file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			w.Stop()
			return
		}
	}
}

// handleEvent starts or resets the debounce timer of a supported file
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !importing.IsSupportedFile(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}

	if t, ok := w.timers[event.Name]; ok {
		t.Stop()
	} else {
		slog.Debug("Detected new supported file", "file", event.Name)
	}
	path := event.Name
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.emit(path)
	})
}

// emit sends the settled file downstream
func (w *Watcher) emit(path string) {
	w.mu.Lock()
	delete(w.timers, path)
	running := w.running
	w.mu.Unlock()
	if !running {
		return
	}

	event := importing.FileEvent{
		Path:      path,
		EventType: importing.FileCreated,
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Info("Emitted file event after debounce", "path", event.Path)
	default:
		slog.Warn("Event channel full, dropping file event", "path", event.Path)
	}
}
