package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

type Config struct {
	URL string `env:"URL"`
	// ChannelPrefix namespaces payload announcements, e.g. terra:payloads:data.
	ChannelPrefix string `env:"CHANNEL_PREFIX" envDefault:"terra:payloads:"`
}

func (c Config) Enabled() bool { return c.URL != "" }

// New connects and pings once so a bad URL surfaces at startup.
func New(ctx context.Context, cfg Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
