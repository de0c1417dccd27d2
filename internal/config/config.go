package config

import "os"

type Config struct {
	DatabasePath string
	CalendarName string
	LogLevel     string
	Port         string
}

func Load() Config {
	return Config{
		DatabasePath: envOrDefault("DATABASE_PATH", "./data/eventcalendarr.db"),
		CalendarName: envOrDefault("CALENDAR_NAME", "Event Calendar"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		Port:         envOrDefault("PORT", "8080"),
	}
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
