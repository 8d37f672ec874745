package config

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Database: Database{
			Path: "./songs.db",
		},
		Server: Server{
			PrintRoutes: false,
			Port:        3535,
		},
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Telegram: Telegram{
			Enabled:      false,
			Token:        "",                                   // Can be obtained with https://t.me/BotFather
			AllowedUsers: []string{"<your_telegram_username>"}, // No @
		},
		Watcher: Watcher{
			Enabled:    false,
			Path:       "./inbox",
			DebounceMs: 2000,
		},
		Tags: Tags{
			WriteOnUpdate: false,
		},
		Metrics: Metrics{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
