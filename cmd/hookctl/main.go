package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/terrahook/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "hookctl",
		Short:   "Operate the Terra webhook service",
		Version: version.Get(),
	}
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(replayCmd())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
