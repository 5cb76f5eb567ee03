package garminfetch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paddlelog/garmin-fetch/internal/app"
	"github.com/paddlelog/garmin-fetch/internal/config"
	"github.com/paddlelog/garmin-fetch/internal/credentials"
	"github.com/paddlelog/garmin-fetch/internal/provider/garmin"
	"github.com/paddlelog/garmin-fetch/internal/service"
)

const defaultDays = 30

var now = time.Now

// openSession logs in to Garmin Connect. Tests replace it with a fake.
var openSession = func(ctx context.Context, creds credentials.Credentials, log *zap.Logger) (service.ActivitySource, error) {
	client := &garmin.Client{Logger: log}
	s, err := client.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func configSearchPaths() []string {
	if configPath != "" {
		return []string{configPath}
	}
	return app.DefaultConfigPaths()
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load(app.DefaultConfigPaths())
}

// withSession loads config, resolves credentials and logs in before run.
func withSession(cmd *cobra.Command, run func(context.Context, service.ActivitySource) error) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", zap.String("path", cfg.Path))
	}
	resolver := &credentials.Resolver{Logger: logger}
	creds, err := resolver.Resolve(ctx, cfg)
	if err != nil {
		return err
	}
	src, err := openSession(ctx, creds, logger)
	if err != nil {
		return fmt.Errorf("error connecting to Garmin: %w", err)
	}
	return run(ctx, src)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func validateDays(days int) error {
	if days < 0 {
		return fmt.Errorf("--days must be >= 0")
	}
	return nil
}
