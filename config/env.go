package config

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the server configuration, populated from the environment
// with an optional .env file.
type Config struct {
	Host           string        `env:"HOST" env-default:"0.0.0.0"`
	Port           int           `env:"PORT" env-default:"8000"`
	DownloadDir    string        `env:"DOWNLOAD_DIR" env-default:"./downloads"`
	FileRetention  time.Duration `env:"FILE_RETENTION" env-default:"1h"`
	CleanupEvery   time.Duration `env:"CLEANUP_INTERVAL" env-default:"30m"`
	AllowedOrigins string        `env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"info"`
	YtdlpPath      string        `env:"YTDLP_PATH" env-default:"yt-dlp"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" env-default:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" env-default:"10"`
}

// Load reads configuration from a .env file (when present) and the process
// environment.
func Load() (Config, error) {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Origins returns the allowed CORS origins as a list.
func (c Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
