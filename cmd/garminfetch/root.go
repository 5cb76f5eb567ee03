package garminfetch

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger = zap.NewNop()
)

// errReported is returned once a diagnostic has already been printed; the
// process still exits non-zero.
var errReported = errors.New("already reported")

var rootCmd = &cobra.Command{
	Use:   "garmin-fetch",
	Short: "garmin-fetch downloads GPX tracks of water sport activities from Garmin Connect",
	Long: `garmin-fetch lists kayaking, canoeing, rowing, paddling, SUP and rafting
activities from Garmin Connect and downloads their GPX tracks.

Credentials come from 1Password (configured in config.json) or from the
GARMIN_EMAIL and GARMIN_PASSWORD environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd, verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return errReported
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (default: ./config.json, then the user config directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger writes human-readable log lines to the command's stderr.
func newLogger(cmd *cobra.Command, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encCfg := zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())),
		level,
	)
	return zap.New(core)
}
