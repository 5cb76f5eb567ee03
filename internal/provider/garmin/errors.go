package garmin

import (
	"errors"
	"fmt"
)

var (
	ErrAuthentication = errors.New("garmin authentication failed")
	ErrMFARequired    = errors.New("garmin account requires multi-factor authentication, which is not supported")
	ErrList           = errors.New("list garmin activities")
)

// DownloadError reports a failed export of a single activity.
type DownloadError struct {
	ActivityID int64
	Err        error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download activity %d: %v", e.ActivityID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
