package garminfetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paddlelog/garmin-fetch/internal/service"
)

var fetchOutput string

var fetchCmd = &cobra.Command{
	Use:   "fetch <activity_id>",
	Short: "Fetch the GPX track of one activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("activity id", args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, src service.ActivitySource) error {
			f := &service.Fetcher{Source: src, Logger: logger}
			path, err := f.FetchOne(ctx, id, fetchOutput)
			if errors.Is(err, service.ErrFetchFailed) {
				return errReported
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", ".", "Output directory")
}
