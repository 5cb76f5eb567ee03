package garmin

// Activity is a raw record from the activity search endpoint. Optional
// upstream fields are pointers so absence can be told apart from zero.
type Activity struct {
	ActivityID     int64         `json:"activityId"`
	ActivityName   *string       `json:"activityName"`
	ActivityType   *ActivityType `json:"activityType"`
	StartTimeLocal *string       `json:"startTimeLocal"`
	Duration       *float64      `json:"duration"`
	Distance       *float64      `json:"distance"`
}

type ActivityType struct {
	TypeKey string `json:"typeKey"`
}

func (a Activity) TypeKey() string {
	if a.ActivityType == nil {
		return ""
	}
	return a.ActivityType.TypeKey
}

type DownloadFormat string

const FormatGPX DownloadFormat = "gpx"
