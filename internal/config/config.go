// Package config reads server settings from the environment.
package config

import (
	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/terrahook/internal/env"
	"github.com/garrettladley/terrahook/internal/ratelimit"
	xredis "github.com/garrettladley/terrahook/internal/redis"
)

const (
	EnvTerraSecret = "TERRA_SECRET"
	EnvDatabaseURL = "DATABASE_URL"
	EnvBucket      = "STORAGE_BUCKET"

	DefaultMaxBodyBytes = 50 << 20
)

type Config struct {
	Port string             `env:"PORT" envDefault:"8080"`
	Env  appenv.Environment `env:"ENV" envDefault:"development"`

	Terra    Terra         `envPrefix:"TERRA_"`
	Webhook  Webhook       `envPrefix:"WEBHOOK_"`
	Database Database      `envPrefix:"DATABASE_"`
	Storage  Storage       `envPrefix:"STORAGE_"`
	Redis    xredis.Config `envPrefix:"REDIS_"`
}

type Terra struct {
	Secret          string `env:"SECRET"`
	SignatureHeader string `env:"SIGNATURE_HEADER" envDefault:"x-terra-signature"`
}

type Webhook struct {
	CORSOrigin         string `env:"CORS_ORIGIN" envDefault:"*"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	MaxBodyBytes       int64  `env:"MAX_BODY_BYTES" envDefault:"52428800"`
}

type Database struct {
	URL     string `env:"URL"`
	Migrate bool   `env:"MIGRATE" envDefault:"false"`
}

type Storage struct {
	Bucket          string `env:"BUCKET" envDefault:"terra-payloads"`
	Region          string `env:"REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE" envDefault:"false"`
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Webhook.RateLimitPerMinute <= 0 {
		c.Webhook.RateLimitPerMinute = ratelimit.DefaultPerMinute
	}
	if c.Webhook.MaxBodyBytes <= 0 {
		c.Webhook.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Terra.SignatureHeader == "" {
		c.Terra.SignatureHeader = "x-terra-signature"
	}
}

// Missing lists the required settings that are unset, in a stable order.
// The server still starts without them; the webhook route answers 500.
func (c Config) Missing() []string {
	var missing []string
	if c.Terra.Secret == "" {
		missing = append(missing, EnvTerraSecret)
	}
	if c.Database.URL == "" {
		missing = append(missing, EnvDatabaseURL)
	}
	if c.Storage.Bucket == "" {
		missing = append(missing, EnvBucket)
	}
	return missing
}
