package garminfetch

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/paddlelog/garmin-fetch/internal/model"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal json output: %w", err)
	}
	return nil
}

func printNoneFound(w io.Writer, days int) {
	fmt.Fprintf(w, "No water sport activities found in the last %d days.\n", days)
}

func printActivityList(w io.Writer, activities []model.ActivitySummary, days int) {
	if len(activities) == 0 {
		printNoneFound(w, days)
		return
	}
	fmt.Fprintf(w, "Water sport activities (last %d days):\n", days)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, act := range activities {
		fmt.Fprintf(w, "  %d: %s - %s\n", act.ID, act.Date, act.Name)
		fmt.Fprintf(w, "           Type: %s, %d min, %.1f km\n", act.Type, durationMinutes(act.Duration), distanceKm(act.Distance))
	}
}

func printDownloaded(w io.Writer, res model.FetchResult) {
	fmt.Fprintf(w, "Downloaded: %s\n", res.File)
}

func durationMinutes(seconds float64) int {
	return int(math.Floor(seconds / 60))
}

// distanceKm converts meters to kilometers rounded half-up to one decimal.
func distanceKm(meters float64) float64 {
	return math.Floor(meters/100+0.5) / 10
}
