package garminfetch

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/paddlelog/garmin-fetch/internal/service"
)

var (
	listDays int
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List water sport activities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateDays(listDays); err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, src service.ActivitySource) error {
			activities, err := service.ListWaterSports(ctx, src, now(), listDays)
			if err != nil {
				return err
			}
			if listJSON {
				return writeJSON(cmd.OutOrStdout(), activities)
			}
			printActivityList(cmd.OutOrStdout(), activities, listDays)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listDays, "days", defaultDays, "Number of days to look back")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}
