package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "TERRA_SECRET", "TERRA_SIGNATURE_HEADER",
		"WEBHOOK_CORS_ORIGIN", "WEBHOOK_RATE_LIMIT_PER_MINUTE", "WEBHOOK_MAX_BODY_BYTES",
		"DATABASE_URL", "DATABASE_MIGRATE", "STORAGE_BUCKET", "STORAGE_REGION",
		"REDIS_URL", "REDIS_CHANNEL_PREFIX",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if !cfg.Env.IsDevelopment() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.Terra.SignatureHeader != "x-terra-signature" {
		t.Errorf("SignatureHeader = %q", cfg.Terra.SignatureHeader)
	}
	if cfg.Webhook.RateLimitPerMinute != 120 {
		t.Errorf("RateLimitPerMinute = %d, want 120", cfg.Webhook.RateLimitPerMinute)
	}
	if cfg.Webhook.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.Webhook.MaxBodyBytes, DefaultMaxBodyBytes)
	}
	if cfg.Webhook.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %q, want *", cfg.Webhook.CORSOrigin)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis enabled without a URL")
	}
}

func TestReadOverrides(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("TERRA_SECRET", "s3cret")
	t.Setenv("TERRA_SIGNATURE_HEADER", "x-terra-sig")
	t.Setenv("WEBHOOK_RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("DATABASE_URL", "postgres://localhost/terra")
	t.Setenv("DATABASE_MIGRATE", "true")
	t.Setenv("STORAGE_USE_PATH_STYLE", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !cfg.Env.IsProduction() {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.Terra.Secret != "s3cret" || cfg.Terra.SignatureHeader != "x-terra-sig" {
		t.Errorf("Terra = %+v", cfg.Terra)
	}
	if cfg.Webhook.RateLimitPerMinute != 120 {
		t.Errorf("non-positive limit not defaulted: %d", cfg.Webhook.RateLimitPerMinute)
	}
	if !cfg.Database.Migrate || !cfg.Storage.UsePathStyle || !cfg.Redis.Enabled() {
		t.Errorf("bool settings not applied: %+v", cfg)
	}
}

func TestMissing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "all set",
			cfg: Config{
				Terra:    Terra{Secret: "s"},
				Database: Database{URL: "postgres://"},
				Storage:  Storage{Bucket: "b"},
			},
		},
		{
			name: "nothing set",
			want: []string{EnvTerraSecret, EnvDatabaseURL, EnvBucket},
		},
		{
			name: "secret only missing",
			cfg: Config{
				Database: Database{URL: "postgres://"},
				Storage:  Storage{Bucket: "b"},
			},
			want: []string{EnvTerraSecret},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, tt.cfg.Missing()); diff != "" {
				t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
