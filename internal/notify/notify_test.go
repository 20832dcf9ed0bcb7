package notify

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/terrahook/internal/payload"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPublish(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	pub := NewPublisher(client, "")

	sub := client.Subscribe(t.Context(), pub.Channel(payload.FamilyData))
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(t.Context()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	user := "terra123"
	want := Message{
		Type:        "activity",
		Family:      payload.FamilyData,
		TerraUserID: &user,
		StoragePath: "2024/05/01/activity/terra123/x.json",
		ReceivedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := pub.Publish(t.Context(), want); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-sub.Channel():
		if msg.Channel != "terra:payloads:data" {
			t.Errorf("channel = %q, want %q", msg.Channel, "terra:payloads:data")
		}
		var got Message
		if err := go_json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("message mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestChannel(t *testing.T) {
	t.Parallel()

	pub := NewPublisher(nil, "hooks:")
	if got := pub.Channel(payload.FamilyMisc); got != "hooks:misc" {
		t.Errorf("Channel() = %q, want %q", got, "hooks:misc")
	}
}

func TestPublishClosedClient(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	_ = client.Close()

	if err := NewPublisher(client, "").Publish(t.Context(), Message{Family: payload.FamilyMisc}); err == nil {
		t.Fatal("Publish() error = nil, want failure")
	}
}
