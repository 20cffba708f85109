package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBType        string `envconfig:"DB_TYPE" default:"mongo"`
	PostgresURL   string `envconfig:"POSTGRES_URL"`
	MigrationsURL string `envconfig:"MIGRATIONS_URL" default:"file://db/migrations"`
	MongoURL      string `envconfig:"MONGO_URL" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"procurement"`
	Port          string `envconfig:"PORT" default:"8080"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	RedisAddr string        `envconfig:"REDIS_ADDR"`

	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	LoginRateLimit int    `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	AllowedOrigin  string `envconfig:"ALLOWED_ORIGIN" default:"*"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"text"`
	AppEnv         string `envconfig:"APP_ENV" default:"development"`

	R2 R2Config `envconfig:"R2"`
}

// R2Config enables uploading vendor directory exports. Export works without it;
// the PDF is then streamed back instead of linked.
type R2Config struct {
	Bucket          string `envconfig:"BUCKET"`
	AccountID       string `envconfig:"ACCOUNT_ID"`
	PublicURL       string `envconfig:"PUBLIC_URL"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
}

func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccountID != "" && c.PublicURL != ""
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// LoadConfig reads .env (when present) and then the process environment.
func LoadConfig(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be provided")
	}
	switch cfg.DBType {
	case "mongo", "memory":
	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, errors.New("POSTGRES_URL is required when DB_TYPE=postgres")
		}
	default:
		return nil, errors.New("DB_TYPE not supported: " + cfg.DBType)
	}
	return &cfg, nil
}
