package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, exposure bounds, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Booking  BookingConfig
	Exposure ExposureConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type RedisConfig struct {
	// Addr empty means the in-memory exposure cache is used instead.
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-User-Id,X-Session-Id"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	// Secret empty disables bearer-token requester identification;
	// header-based identity still applies.
	Secret string `envconfig:"JWT_SECRET" default:""`
}

type BookingConfig struct {
	HoldTTL              time.Duration `envconfig:"BOOKING_HOLD_TTL" default:"10m"`
	SweepInterval        time.Duration `envconfig:"BOOKING_SWEEP_INTERVAL" default:"1m"`
	IdempotencyRetention time.Duration `envconfig:"BOOKING_IDEMPOTENCY_RETENTION" default:"24h"`
}

type ExposureConfig struct {
	StickinessTTL time.Duration `envconfig:"EXPOSURE_STICKINESS_TTL" default:"7m"`
	PersonMin     int           `envconfig:"EXPOSURE_PERSON_MIN" default:"1"`
	PersonMax     int           `envconfig:"EXPOSURE_PERSON_MAX" default:"3"`
	LocationMin   int           `envconfig:"EXPOSURE_LOCATION_MIN" default:"3"`
	LocationMax   int           `envconfig:"EXPOSURE_LOCATION_MAX" default:"5"`
	RatePerSec    float64       `envconfig:"EXPOSURE_RATE_PER_SEC" default:"10"`
	RateBurst     int           `envconfig:"EXPOSURE_RATE_BURST" default:"20"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
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
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Booking: BookingConfig{
			HoldTTL:              10 * time.Minute,
			SweepInterval:        time.Minute,
			IdempotencyRetention: 24 * time.Hour,
		},
		Exposure: ExposureConfig{
			StickinessTTL: 7 * time.Minute,
			PersonMin:     1,
			PersonMax:     3,
			LocationMin:   3,
			LocationMax:   5,
			RatePerSec:    100,
			RateBurst:     200,
		},
	}
}
