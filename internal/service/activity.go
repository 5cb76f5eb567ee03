package service

import (
	"context"
	"fmt"
	"time"

	"github.com/paddlelog/garmin-fetch/internal/model"
	"github.com/paddlelog/garmin-fetch/internal/provider/garmin"
)

const unnamedActivity = "Unnamed"

var waterSportTypes = map[string]struct{}{
	"kayaking":                {},
	"whitewater_rafting_v2":   {},
	"stand_up_paddleboarding": {},
	"paddling":                {},
	"canoeing":                {},
	"rowing":                  {},
}

// ActivitySource is the part of a Garmin session the services depend on.
type ActivitySource interface {
	ListActivities(ctx context.Context, start, end time.Time) ([]garmin.Activity, error)
	DownloadActivity(ctx context.Context, activityID int64, format garmin.DownloadFormat) ([]byte, error)
}

func IsWaterSport(typeKey string) bool {
	_, ok := waterSportTypes[typeKey]
	return ok
}

// FilterWaterSports keeps water-sport records in input order and fills
// defaults for absent fields. The result is never nil.
func FilterWaterSports(raw []garmin.Activity) []model.ActivitySummary {
	out := make([]model.ActivitySummary, 0, len(raw))
	for _, a := range raw {
		typeKey := a.TypeKey()
		if !IsWaterSport(typeKey) {
			continue
		}
		out = append(out, model.ActivitySummary{
			ID:       a.ActivityID,
			Name:     stringOr(a.ActivityName, unnamedActivity),
			Type:     typeKey,
			Date:     datePrefix(stringOr(a.StartTimeLocal, "")),
			Duration: floatOr(a.Duration),
			Distance: floatOr(a.Distance),
		})
	}
	return out
}

// DateRange returns the calendar range from days ago through now.
func DateRange(now time.Time, days int) (time.Time, time.Time) {
	return now.AddDate(0, 0, -days), now
}

func ListWaterSports(ctx context.Context, src ActivitySource, now time.Time, days int) ([]model.ActivitySummary, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must be >= 0")
	}
	start, end := DateRange(now, days)
	raw, err := src.ListActivities(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return FilterWaterSports(raw), nil
}

func datePrefix(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
