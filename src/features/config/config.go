package config

// Config holds the application configuration.
type Config struct {
	Database Database `yaml:"database"`
	Server   Server   `yaml:"server"`
	Logger   Logger   `yaml:"logger"`
	Telegram Telegram `yaml:"telegram"`
	Watcher  Watcher  `yaml:"watcher"`
	Tags     Tags     `yaml:"tags"`
	Metrics  Metrics  `yaml:"metrics"`
}

// Database holds the configuration for the database
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"lte=65535"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
}

type Telegram struct {
	Enabled      bool     `yaml:"enabled"`
	Token        string   `yaml:"token" validate:"required_if=Enabled true"`
	AllowedUsers []string `yaml:"allowedUsers"`
}

// Watcher holds the drop folder settings
type Watcher struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path" validate:"required_if=Enabled true"`
	DebounceMs int    `yaml:"debounce_ms" validate:"gte=0"`
}

// Tags controls whether edits are written back into audio files
type Tags struct {
	WriteOnUpdate bool `yaml:"write_on_update"`
}

// Metrics holds the Prometheus endpoint settings
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"omitempty,startswith=/"`
}
