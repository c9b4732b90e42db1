package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/misterclayt0n/fittrack/internal/config"
	"github.com/misterclayt0n/fittrack/internal/logging"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/storage"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "fittrack",
	Short:         "Log workouts, score them and compete with your groups",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("Failed to load config: %w", err)
		}
		cfg = c
		logger = logging.New(cfg.Log)
		return nil
	},
}

// Execute runs the CLI; Ctrl-C cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// openStorage connects to the configured database. Callers close it.
func openStorage(ctx context.Context) (*storage.Storage, error) {
	st, err := storage.NewStorage(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("Failed to open database: %w", err)
	}
	return st, nil
}

// activeProfile returns the profile this machine acts as.
func activeProfile() (*models.Profile, error) {
	p, err := utils.LoadActiveProfile()
	if err != nil {
		return nil, fmt.Errorf("Failed to load profile: %w", err)
	}
	return p, nil
}
