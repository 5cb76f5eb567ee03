package garminfetch

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/paddlelog/garmin-fetch/internal/model"
	"github.com/paddlelog/garmin-fetch/internal/service"
)

var (
	fetchAllDays   int
	fetchAllOutput string
	fetchAllJSON   bool
)

var fetchAllCmd = &cobra.Command{
	Use:   "fetch-all",
	Short: "Fetch GPX tracks for all water sport activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateDays(fetchAllDays); err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, src service.ActivitySource) error {
			activities, err := service.ListWaterSports(ctx, src, now(), fetchAllDays)
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				if fetchAllJSON {
					return writeJSON(cmd.OutOrStdout(), activities)
				}
				printNoneFound(cmd.OutOrStdout(), fetchAllDays)
				return nil
			}

			f := &service.Fetcher{Source: src, Logger: logger}
			if !fetchAllJSON {
				out := cmd.OutOrStdout()
				f.OnFetched = func(res model.FetchResult) { printDownloaded(out, res) }
			}
			results, err := f.FetchAll(ctx, activities, fetchAllOutput)
			if results == nil {
				return err
			}
			if err != nil {
				logger.Debug("some downloads failed",
					zap.Int("failed", len(multierr.Errors(err))),
					zap.Int("downloaded", len(results)))
			}
			if fetchAllJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(fetchAllCmd)
	fetchAllCmd.Flags().IntVar(&fetchAllDays, "days", defaultDays, "Number of days to look back")
	fetchAllCmd.Flags().StringVarP(&fetchAllOutput, "output", "o", ".", "Output directory")
	fetchAllCmd.Flags().BoolVar(&fetchAllJSON, "json", false, "Output results as JSON")
}
