package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paddlelog/garmin-fetch/internal/provider/garmin"
)

type fakeSource struct {
	activities []garmin.Activity
	listErr    error
	failIDs    map[int64]bool

	listStart, listEnd time.Time
	downloads          []int64
}

func (f *fakeSource) ListActivities(_ context.Context, start, end time.Time) ([]garmin.Activity, error) {
	f.listStart, f.listEnd = start, end
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.activities, nil
}

func (f *fakeSource) DownloadActivity(_ context.Context, id int64, format garmin.DownloadFormat) ([]byte, error) {
	f.downloads = append(f.downloads, id)
	if format != garmin.FormatGPX {
		return nil, fmt.Errorf("unexpected format %q", format)
	}
	if f.failIDs[id] {
		return nil, &garmin.DownloadError{ActivityID: id, Err: errors.New("status 500")}
	}
	return []byte(fmt.Sprintf("<gpx id=\"%d\"/>", id)), nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func rawActivity(id int64, typeKey string) garmin.Activity {
	return garmin.Activity{ActivityID: id, ActivityType: &garmin.ActivityType{TypeKey: typeKey}}
}
