package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, upstream URL,
//   service token), security settings
// - default: Values common across all environments (staleness windows,
//   page sizes, timeouts), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Fallback FallbackConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type UpstreamConfig struct {
	BaseURL string        `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"UPSTREAM_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`
}

type CacheConfig struct {
	UserStaleTime     time.Duration `envconfig:"CACHE_USER_STALE" default:"60s"`
	RoomStaleTime     time.Duration `envconfig:"CACHE_ROOM_STALE" default:"60s"`
	LocationStaleTime time.Duration `envconfig:"CACHE_LOCATION_STALE" default:"60s"`
	BookingStaleTime  time.Duration `envconfig:"CACHE_BOOKING_STALE" default:"30s"`
}

type FallbackConfig struct {
	DSN string `envconfig:"FALLBACK_DB" default:"fallback.db"`
}

type SessionConfig struct {
	StatePath string `envconfig:"SESSION_STATE_PATH" default:"session.json"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Upstream: UpstreamConfig{
			BaseURL: "http://localhost:18080",
			APIKey:  "test-api-key",
			Timeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			UserStaleTime:     time.Minute,
			RoomStaleTime:     time.Minute,
			LocationStaleTime: time.Minute,
			BookingStaleTime:  30 * time.Second,
		},
		Fallback: FallbackConfig{
			DSN: ":memory:",
		},
		Session: SessionConfig{
			StatePath: "testdata/session.json",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
	}
}
