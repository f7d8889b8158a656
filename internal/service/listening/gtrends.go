// internal/service/listening/gtrends.go

package listening

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"trendwatch/internal/domain/trend"
)

const (
	trendsTopN      = 20
	trendsSeedLimit = 5
)

// TrendsConnector pulls daily trending terms and interest-over-time
// series from the public Google Trends JSON endpoints. The endpoints
// prefix their JSON with an anti-hijacking guard line that has to be
// stripped before decoding.
type TrendsConnector struct {
	HTTPClient *http.Client
	BaseURL    string
	Geo        string
	TopN       int
}

// NewTrendsConnector creates a connector for the given geography code.
func NewTrendsConnector(geo string) *TrendsConnector {
	return &TrendsConnector{
		HTTPClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: "https://trends.google.com",
		Geo:     geo,
		TopN:    trendsTopN,
	}
}

// Platform returns the platform tag this source produces.
func (c *TrendsConnector) Platform() string { return trend.PlatformGTrends }

type dailyTrendsResponse struct {
	Default struct {
		TrendingSearchesDays []struct {
			TrendingSearches []struct {
				Title struct {
					Query string `json:"query"`
				} `json:"title"`
				FormattedTraffic string `json:"formattedTraffic"`
			} `json:"trendingSearches"`
		} `json:"trendingSearchesDays"`
	} `json:"default"`
}

type exploreResponse struct {
	Widgets []struct {
		ID      string          `json:"id"`
		Token   string          `json:"token"`
		Request json.RawMessage `json:"request"`
	} `json:"widgets"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []struct {
			Value []int `json:"value"`
		} `json:"timelineData"`
	} `json:"default"`
}

// Fetch gathers the current top trending terms (flat engagement 0, this
// source has no engagement metric) plus interest-over-time values for
// the first few keywords, using the latest observed value as
// engagement. Both halves are independent; the result is skipped only
// when neither produced anything.
func (c *TrendsConnector) Fetch(ctx context.Context, keywords []string, days, limit int) trend.FetchResult {
	var records []trend.Record
	var reasons []string

	daily, err := c.fetchDailyTrends(ctx)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("daily trends: %v", err))
	} else {
		records = append(records, daily...)
	}

	seed := keywords
	if len(seed) > trendsSeedLimit {
		seed = seed[:trendsSeedLimit]
	}
	if len(seed) == 0 {
		seed = []string{"marketing"}
	}

	interest, err := c.fetchInterestOverTime(ctx, seed)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("interest over time: %v", err))
	} else {
		records = append(records, interest...)
	}

	if len(records) == 0 && len(reasons) > 0 {
		return trend.Skipped(trend.PlatformGTrends, fmt.Sprintf("Google Trends unavailable (%v)", reasons))
	}
	return trend.OK(trend.PlatformGTrends, records)
}

func (c *TrendsConnector) fetchDailyTrends(ctx context.Context) ([]trend.Record, error) {
	endpoint := fmt.Sprintf("%s/trends/api/dailytrends?hl=en-US&tz=330&geo=%s", c.BaseURL, url.QueryEscape(c.Geo))

	var daily dailyTrendsResponse
	if err := c.getJSON(ctx, endpoint, &daily); err != nil {
		return nil, err
	}

	var records []trend.Record
	for _, day := range daily.Default.TrendingSearchesDays {
		for _, search := range day.TrendingSearches {
			if len(records) >= c.TopN {
				return records, nil
			}
			term := search.Title.Query
			if term == "" {
				continue
			}
			records = append(records, trend.Record{
				ID:         "gtrends-daily-" + term,
				Platform:   trend.PlatformGTrends,
				Title:      term,
				Text:       term,
				URL:        "https://trends.google.com/trends/explore?q=" + url.QueryEscape(term),
				Lang:       "en",
				Engagement: 0,
				RawMetrics: map[string]any{"type": "daily_trending", "traffic": search.FormattedTraffic},
			})
		}
	}
	return records, nil
}

// fetchInterestOverTime performs the two-step token dance the Trends
// frontend uses: an explore call that issues widget tokens, then the
// multiline widget data call for the TIMESERIES widget.
func (c *TrendsConnector) fetchInterestOverTime(ctx context.Context, seed []string) ([]trend.Record, error) {
	type comparisonItem struct {
		Keyword string `json:"keyword"`
		Geo     string `json:"geo"`
		Time    string `json:"time"`
	}
	exploreReq := struct {
		ComparisonItem []comparisonItem `json:"comparisonItem"`
		Category       int              `json:"category"`
		Property       string           `json:"property"`
	}{Category: 0, Property: ""}
	for _, k := range seed {
		exploreReq.ComparisonItem = append(exploreReq.ComparisonItem, comparisonItem{
			Keyword: k, Geo: c.Geo, Time: "now 7-d",
		})
	}

	reqJSON, err := json.Marshal(exploreReq)
	if err != nil {
		return nil, fmt.Errorf("encoding explore request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/trends/api/explore?hl=en-US&tz=330&req=%s", c.BaseURL, url.QueryEscape(string(reqJSON)))
	var explore exploreResponse
	if err := c.getJSON(ctx, endpoint, &explore); err != nil {
		return nil, err
	}

	var token string
	var widgetReq json.RawMessage
	for _, w := range explore.Widgets {
		if w.ID == "TIMESERIES" {
			token = w.Token
			widgetReq = w.Request
			break
		}
	}
	if token == "" {
		return nil, fmt.Errorf("no timeseries widget in explore response")
	}

	endpoint = fmt.Sprintf(
		"%s/trends/api/widgetdata/multiline?hl=en-US&tz=330&req=%s&token=%s",
		c.BaseURL, url.QueryEscape(string(widgetReq)), url.QueryEscape(token),
	)
	var multiline multilineResponse
	if err := c.getJSON(ctx, endpoint, &multiline); err != nil {
		return nil, err
	}

	timeline := multiline.Default.TimelineData
	if len(timeline) == 0 {
		return nil, nil
	}
	latest := timeline[len(timeline)-1].Value

	var records []trend.Record
	for i, keyword := range seed {
		if i >= len(latest) {
			break
		}
		records = append(records, trend.Record{
			ID:         "gtrends-iot-" + keyword,
			Platform:   trend.PlatformGTrends,
			Title:      keyword,
			Text:       keyword,
			URL:        "https://trends.google.com/trends/explore?q=" + url.QueryEscape(keyword),
			Lang:       "en",
			Engagement: latest[i],
			RawMetrics: map[string]any{"type": "interest_over_time", "latest": latest[i]},
		})
	}
	return records, nil
}

func (c *TrendsConnector) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Google Trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Google Trends returned status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(stripGuardPrefix(body), v); err != nil {
		return fmt.Errorf("failed to decode Google Trends response: %w", err)
	}
	return nil
}

// stripGuardPrefix removes the )]}' line Google serves ahead of the
// JSON payload.
func stripGuardPrefix(b []byte) []byte {
	obj := bytes.IndexByte(b, '{')
	arr := bytes.IndexByte(b, '[')
	i := obj
	if i < 0 || (arr >= 0 && arr < i) {
		i = arr
	}
	if i > 0 {
		return b[i:]
	}
	return b
}
