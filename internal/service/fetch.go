package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/paddlelog/garmin-fetch/internal/app"
	"github.com/paddlelog/garmin-fetch/internal/model"
	"github.com/paddlelog/garmin-fetch/internal/provider/garmin"
)

// ErrFetchFailed marks a per-activity failure that callers may skip.
var ErrFetchFailed = errors.New("fetch gpx failed")

// FetchError is the failure of one activity. It matches ErrFetchFailed.
type FetchError struct {
	ActivityID int64
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s for activity %d: %v", ErrFetchFailed, e.ActivityID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

type Fetcher struct {
	Source ActivitySource
	Logger *zap.Logger

	// OnFetched, if set, is called after each file is written.
	OnFetched func(model.FetchResult)
}

// FetchOne downloads the GPX track of one activity into outputDir and
// returns the written path. An existing file is overwritten.
func (f *Fetcher) FetchOne(ctx context.Context, activityID int64, outputDir string) (string, error) {
	if err := app.EnsureOutputDir(outputDir); err != nil {
		return "", err
	}
	return f.fetch(ctx, activityID, outputDir)
}

// FetchAll downloads every activity in order. Failed items are logged and
// left out of the results; their errors are combined in the returned error.
// Results are nil only when the output directory cannot be created.
func (f *Fetcher) FetchAll(ctx context.Context, activities []model.ActivitySummary, outputDir string) ([]model.FetchResult, error) {
	results := make([]model.FetchResult, 0, len(activities))
	if len(activities) == 0 {
		return results, nil
	}
	if err := app.EnsureOutputDir(outputDir); err != nil {
		return nil, err
	}

	var errs error
	for _, act := range activities {
		path, err := f.fetch(ctx, act.ID, outputDir)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		res := model.FetchResult{
			ID:   act.ID,
			Name: act.Name,
			Date: act.Date,
			File: path,
		}
		if f.OnFetched != nil {
			f.OnFetched(res)
		}
		results = append(results, res)
	}
	return results, errs
}

func (f *Fetcher) fetch(ctx context.Context, activityID int64, outputDir string) (string, error) {
	path, err := f.download(ctx, activityID, outputDir)
	if err != nil {
		f.logger().Warn(fmt.Sprintf("error fetching GPX for activity %d", activityID), zap.Error(err))
		return "", &FetchError{ActivityID: activityID, Err: err}
	}
	f.logger().Debug("wrote gpx", zap.Int64("activity_id", activityID), zap.String("file", path))
	return path, nil
}

func (f *Fetcher) download(ctx context.Context, activityID int64, outputDir string) (string, error) {
	data, err := f.Source.DownloadActivity(ctx, activityID, garmin.FormatGPX)
	if err != nil {
		return "", err
	}
	path := app.GPXPath(outputDir, activityID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (f *Fetcher) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}
