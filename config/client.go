package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ClientConfig configures vendorctl.
type ClientConfig struct {
	BaseURL   string        `envconfig:"VENDORCTL_BASE_URL" default:"http://localhost:8080"`
	TokenFile string        `envconfig:"VENDORCTL_TOKEN_FILE"`
	Token     string        `envconfig:"VENDORCTL_TOKEN"`
	Timeout   time.Duration `envconfig:"VENDORCTL_TIMEOUT" default:"15s"`
	PageSize  int           `envconfig:"VENDORCTL_PAGE_SIZE" default:"5"`
	LogFormat string        `envconfig:"LOG_FORMAT" default:"text"`
}

func LoadClientConfig() (*ClientConfig, error) {
	_ = godotenv.Load()

	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
