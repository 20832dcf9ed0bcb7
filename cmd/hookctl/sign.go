package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrettladley/terrahook/internal/config"
	"github.com/garrettladley/terrahook/internal/signature"
)

func signCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the signature header value for a payload",
		Long:  "Reads a payload from --file (or stdin) and prints its hex HMAC-SHA256 under TERRA_SECRET.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if cfg.Terra.Secret == "" {
				return errors.New(config.EnvTerraSecret + " is not set")
			}

			body, err := readPayload(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), signature.Sign(cfg.Terra.Secret, body))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (default stdin)")
	return cmd
}

func readPayload(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return body, nil
}
