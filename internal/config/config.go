// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"mars-photos/internal/controller"
	"mars-photos/internal/networker"
	"mars-photos/internal/utils"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrInvalidBaseURL = errors.New("invalid photos base url")
	ErrInvalidTimeout = errors.New("photos timeout must be positive")
)

type Config struct {
	App struct {
		Env      string `env:"APP_ENV" env-default:"dev"`
		HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`
	}
	Photos struct {
		BaseURL           string        `env:"PHOTOS_BASE_URL" env-default:"https://android-kotlin-fun-mars-server.appspot.com"`
		Timeout           time.Duration `env:"PHOTOS_TIMEOUT" env-default:"30s"`
		DecodeErrorPolicy string        `env:"PHOTOS_DECODE_ERROR_POLICY" env-default:"fold"`
	}
	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" env-default:"0"`
		Channel  string `env:"REDIS_CHANNEL" env-default:"photos:state"`
	}
	Kafka struct {
		Seeds    []string `env:"KAFKA_SEEDS" env-separator:","`
		Topic    string   `env:"KAFKA_TOPIC" env-default:"photos-state"`
		Username string   `env:"KAFKA_USERNAME"`
		Password string   `env:"KAFKA_PASSWORD"`
	}
	Tracing struct {
		OTLPEndpoint string `env:"OTLP_ENDPOINT"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("read configuration: %w\n%s", err, help)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate normalizes the base URL in place and checks the values the fetch depends on.
func (c *Config) Validate() error {
	if c.Photos.BaseURL == "" {
		c.Photos.BaseURL = networker.DefaultBaseURL
	}

	c.Photos.BaseURL = utils.CorrectURLScheme(c.Photos.BaseURL)
	if !utils.IsAbsoluteURL(c.Photos.BaseURL) {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.Photos.BaseURL)
	}

	if c.Photos.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Photos.Timeout)
	}

	if _, err := c.DecodePolicy(); err != nil {
		return err
	}

	return nil
}

func (c *Config) DecodePolicy() (controller.DecodeErrorPolicy, error) {
	return controller.ParseDecodeErrorPolicy(c.Photos.DecodeErrorPolicy)
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Seeds) > 0
}

func (c *Config) TracingEnabled() bool {
	return c.Tracing.OTLPEndpoint != ""
}

func (c *Config) IsDev() bool {
	return c.App.Env == "dev"
}
