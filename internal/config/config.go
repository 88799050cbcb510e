package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DeletePolicy decides what happens to a company's invoices when the company is deleted.
type DeletePolicy string

const (
	DeleteRestrict DeletePolicy = "restrict"
	DeleteCascade  DeletePolicy = "cascade"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Biztime"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host         string        `envconfig:"DB_HOST" default:"localhost"`
		Port         int           `envconfig:"DB_PORT" default:"5432"`
		User         string        `envconfig:"DB_USER" default:"postgres"`
		Password     string        `envconfig:"DB_PASSWORD" default:""`
		Name         string        `envconfig:"DB_NAME" default:"biztime"`
		SSLMode      string        `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
		AutoMigrate  bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Auth struct {
		// Empty disables the bearer guard on mutating routes.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Company struct {
		DeletePolicy DeletePolicy `envconfig:"COMPANY_DELETE_POLICY" default:"restrict"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// LogLevel parses Log.Level, falling back to info for unknown values.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Company.DeletePolicy {
	case DeleteRestrict, DeleteCascade:
	default:
		return nil, fmt.Errorf("invalid COMPANY_DELETE_POLICY %q", cfg.Company.DeletePolicy)
	}

	return &cfg, nil
}
