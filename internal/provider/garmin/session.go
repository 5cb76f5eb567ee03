package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	activitySearchPath = "/activitylist-service/activities/search/activities"
	exportPathFormat   = "/download-service/export/%s/activity/%d"
	searchPageSize     = 20
	dateLayout         = "2006-01-02"
)

// Session is an authenticated Garmin Connect API session.
type Session struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *zap.Logger
}

// ListActivities returns every activity whose start date falls in the
// inclusive range [start, end], in upstream order.
func (s *Session) ListActivities(ctx context.Context, start, end time.Time) ([]Activity, error) {
	var out []Activity
	for offset := 0; ; offset += searchPageSize {
		page, err := s.searchPage(ctx, start, end, offset)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrList, err)
		}
		s.logger.Debug("fetched activity page", zap.Int("start", offset), zap.Int("count", len(page)))
		if len(page) == 0 {
			break
		}
		out = append(out, page...)
	}
	return out, nil
}

func (s *Session) searchPage(ctx context.Context, start, end time.Time, offset int) ([]Activity, error) {
	q := url.Values{}
	q.Set("startDate", start.Format(dateLayout))
	q.Set("endDate", end.Format(dateLayout))
	q.Set("start", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(searchPageSize))

	req, err := s.newRequest(ctx, s.baseURL+activitySearchPath+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	body, err := do(s.http, req)
	if err != nil {
		return nil, err
	}
	var page []Activity
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode activity page: %w", err)
	}
	return page, nil
}

// DownloadActivity exports one activity. Failures are *DownloadError.
func (s *Session) DownloadActivity(ctx context.Context, activityID int64, format DownloadFormat) ([]byte, error) {
	if format == "" {
		format = FormatGPX
	}
	req, err := s.newRequest(ctx, s.baseURL+fmt.Sprintf(exportPathFormat, format, activityID))
	if err != nil {
		return nil, &DownloadError{ActivityID: activityID, Err: err}
	}
	body, err := do(s.http, req)
	if err != nil {
		return nil, &DownloadError{ActivityID: activityID, Err: err}
	}
	return body, nil
}

func (s *Session) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	return req, nil
}
