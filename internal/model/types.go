package model

// ActivitySummary is the normalized view of a water-sport activity.
type ActivitySummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Duration float64 `json:"duration"`
	Distance float64 `json:"distance"`
}

// FetchResult describes a GPX file written to disk.
type FetchResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
	File string `json:"file"`
}
