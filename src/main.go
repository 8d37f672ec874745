package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contre95/songshelf/src/features/adding"
	"github.com/contre95/songshelf/src/features/config"
	"github.com/contre95/songshelf/src/features/deleting"
	"github.com/contre95/songshelf/src/features/editing"
	"github.com/contre95/songshelf/src/features/hosting"
	"github.com/contre95/songshelf/src/features/importing"
	"github.com/contre95/songshelf/src/features/library"
	"github.com/contre95/songshelf/src/features/logging"
	"github.com/contre95/songshelf/src/features/metrics"
	"github.com/contre95/songshelf/src/features/terminal"
	"github.com/contre95/songshelf/src/infra/catalog"
	"github.com/contre95/songshelf/src/infra/database"
	"github.com/contre95/songshelf/src/infra/queue"
	"github.com/contre95/songshelf/src/infra/stack"
	"github.com/contre95/songshelf/src/infra/tag"
	"github.com/contre95/songshelf/src/infra/watcher"
	"github.com/contre95/songshelf/src/music"
)

const logFile = "songshelf.log"

func main() {
	configPath := os.Getenv("SONGSHELF_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	tui := len(os.Args) > 1 && os.Args[1] == "tui"

	// The form owns the terminal, so logs go to a file instead
	if tui {
		logger, closer, err := logging.SetupFileLogger(cfgManager, logFile)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer closer.Close()
		slog.SetDefault(logger)
	} else {
		slog.SetDefault(logging.SetupLogger(cfgManager))
	}

	if err := cfgManager.EnsureDirectories(); err != nil {
		log.Fatalf("failed to create directories: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create the database library
	db, err := database.NewSqliteLibrary(cfgManager.Get().Database.Path)
	if err != nil {
		log.Fatalf("failed to create library: %v", err)
	}
	defer db.Close()
	songs := catalog.NewCachedLibrary(db)

	additions := queue.NewInMemoryQueue()
	deletions := stack.NewInMemoryStack()

	metricsService := metrics.NewService(db, additions, deletions)
	var collector *metrics.Collector
	var recorder music.OperationRecorder
	if cfgManager.Get().Metrics.Enabled {
		collector = metrics.NewCollector(metricsService)
		recorder = collector
	}

	libraryService := library.NewService(songs)
	addingService := adding.NewService(additions, songs, recorder)
	editingService := editing.NewService(songs, tag.NewTagWriter(), cfgManager, recorder)
	deletingService := deleting.NewService(deletions, songs, recorder)
	importingService := importing.NewService(tag.NewTagReader(), addingService)

	if tui {
		err := terminal.Run(ctx, terminal.Services{
			Library:  libraryService,
			Adding:   addingService,
			Editing:  editingService,
			Deleting: deletingService,
		})
		if err != nil {
			log.Fatalf("terminal: %v", err)
		}
		return
	}

	if n, err := editingService.Load(ctx); err != nil {
		slog.Warn("Failed to warm the id index", "error", err)
	} else {
		slog.Info("Library loaded", "songs", n)
	}

	// Start the drop folder watcher if enabled
	if wcfg := cfgManager.Get().Watcher; wcfg.Enabled {
		events := make(chan importing.FileEvent, 64)
		w, err := watcher.NewWatcher(events, time.Duration(wcfg.DebounceMs)*time.Millisecond)
		if err != nil {
			slog.Error("Failed to create watcher", "error", err)
		} else if err := w.Start(ctx, wcfg.Path); err != nil {
			slog.Error("Failed to start watcher", "error", err, "path", wcfg.Path)
		} else {
			defer w.Stop()
			go importingService.Run(ctx, events)
			slog.Info("Watching drop folder", "path", wcfg.Path)
		}
	}

	services := hosting.Services{
		Library:   libraryService,
		Adding:    addingService,
		Editing:   editingService,
		Deleting:  deletingService,
		Importing: importingService,
		Metrics:   metricsService,
		Collector: collector,
	}

	// Create and start the Telegram bot if enabled
	var telegramBot *hosting.TelegramBot
	if cfgManager.Get().Telegram.Enabled {
		telegramBot, err = hosting.NewTelegramBot(cfgManager, services)
		if err != nil {
			slog.Error("Failed to initialize Telegram bot", "error", err)
		} else {
			go telegramBot.Start()
			slog.Info("Telegram bot started")
		}
	}

	server := hosting.NewServer(cfgManager, services, hosting.DefaultViewsDir)
	go func() {
		slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port)
		if err := server.Start(); err != nil {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	if telegramBot != nil {
		telegramBot.Stop()
		slog.Info("Telegram bot stopped")
	}
	if err := server.Shutdown(); err != nil {
		slog.Error("Failed to shut down server", "error", err)
	}
	if staged := deletingService.Len(); staged > 0 {
		slog.Warn("Exiting with staged deletions left unapplied", "staged", staged)
	}
	if pending := addingService.Len(); pending > 0 {
		slog.Warn("Exiting with pending additions left unapplied", "pending", pending)
	}
	slog.Info("Server gracefully shut down.")
}
