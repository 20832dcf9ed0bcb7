// Package notify announces newly stored payloads over Redis pub/sub so
// downstream sync workers can react without polling.
package notify

import (
	"context"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/terrahook/internal/payload"
)

const DefaultChannelPrefix = "terra:payloads:"

type Message struct {
	Type        string         `json:"type"`
	Family      payload.Family `json:"family"`
	TerraUserID *string        `json:"terra_user_id"`
	Provider    *string        `json:"provider"`
	ReferenceID *string        `json:"reference_id"`
	StoragePath string         `json:"storage_path"`
	ReceivedAt  time.Time      `json:"received_at"`
}

type Publisher struct {
	client redis.Cmdable
	prefix string
}

func NewPublisher(client redis.Cmdable, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &Publisher{client: client, prefix: prefix}
}

// Channel returns the pub/sub channel messages of family f are sent on.
func (p *Publisher) Channel(f payload.Family) string {
	return p.prefix + string(f)
}

func (p *Publisher) Publish(ctx context.Context, m Message) error {
	data, err := go_json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := p.client.Publish(ctx, p.Channel(m.Family), data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.Channel(m.Family), err)
	}
	return nil
}
