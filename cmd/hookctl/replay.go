package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/terrahook/internal/archive"
	"github.com/garrettladley/terrahook/internal/config"
	"github.com/garrettladley/terrahook/internal/signature"
	"github.com/garrettladley/terrahook/internal/version"
	"github.com/garrettladley/terrahook/internal/xhttp"
)

const replayTimeout = 30 * time.Second

func replayCmd() *cobra.Command {
	var (
		url  string
		file string
	)

	cmd := &cobra.Command{
		Use:   "replay [archive-path]",
		Short: "Re-deliver an archived payload to the webhook endpoint",
		Long: "Fetches the payload at archive-path from the archive bucket (or reads --file), " +
			"signs it with TERRA_SECRET and POSTs it to --url.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if cfg.Terra.Secret == "" {
				return errors.New(config.EnvTerraSecret + " is not set")
			}

			var body []byte
			switch {
			case len(args) == 1:
				client, err := archive.NewS3Client(ctx, archive.ClientConfig{
					Region:          cfg.Storage.Region,
					Endpoint:        cfg.Storage.Endpoint,
					AccessKeyID:     cfg.Storage.AccessKeyID,
					SecretAccessKey: cfg.Storage.SecretAccessKey,
					UsePathStyle:    cfg.Storage.UsePathStyle,
				})
				if err != nil {
					return err
				}
				if body, err = archive.Read(ctx, client, cfg.Storage.Bucket, args[0]); err != nil {
					return err
				}
			case file != "":
				if body, err = readPayload(cmd.InOrStdin(), file); err != nil {
					return err
				}
			default:
				return errors.New("an archive path or --file is required")
			}

			httpClient := xhttp.NewHTTPClient(version.UserAgent(), xhttp.WithTimeout(replayTimeout))
			status, respBody, err := deliver(ctx, httpClient, url, cfg.Terra.SignatureHeader, cfg.Terra.Secret, body)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", status, bytes.TrimSpace(respBody))
			if status != http.StatusOK {
				return fmt.Errorf("webhook answered %d", status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/webhooks/terra", "webhook endpoint")
	cmd.Flags().StringVarP(&file, "file", "f", "", "replay a local payload file instead of an archived one")
	return cmd
}

// deliver signs body the way Terra does and POSTs it to url.
func deliver(ctx context.Context, client *http.Client, url, header, secret string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(xhttp.ContentType, xhttp.ApplicationJSON)
	req.Header.Set(header, signature.Sign(secret, body))

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to deliver: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
