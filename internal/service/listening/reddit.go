// internal/service/listening/reddit.go

package listening

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trendwatch/internal/domain/trend"
)

// The fixed set of topical communities searched on every run.
var defaultSubreddits = []string{
	"marketing", "SEO", "socialmedia", "advertising",
	"content_marketing", "PPC", "bigseo",
}

// RedditCredentials gate the connector: all three must be present.
type RedditCredentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

func (c RedditCredentials) configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.UserAgent != ""
}

// RedditConnector searches forum-style posts in a fixed list of
// marketing communities through the public Reddit JSON API.
type RedditConnector struct {
	HTTPClient *http.Client
	BaseURL    string
	Subreddits []string

	creds RedditCredentials
}

// NewRedditConnector creates a new Reddit connector
func NewRedditConnector(creds RedditCredentials) *RedditConnector {
	return &RedditConnector{
		HTTPClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL:    "https://www.reddit.com",
		Subreddits: defaultSubreddits,
		creds:      creds,
	}
}

// Platform returns the platform tag this source produces.
func (c *RedditConnector) Platform() string { return trend.PlatformReddit }

// redditSearchResponse is the envelope around a subreddit search.
type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Fetch searches each community independently with the same OR-keyword
// query. The API's own time filter is coarse (week), so results older
// than the window are dropped client-side. Engagement is score plus
// comment count. A failing community keeps whatever was collected so
// far; only a fully empty failed run reports itself skipped.
func (c *RedditConnector) Fetch(ctx context.Context, keywords []string, days, limit int) trend.FetchResult {
	if !c.creds.configured() {
		return trend.Skipped(trend.PlatformReddit, "Reddit credentials not configured")
	}

	query := strings.Join(quoteMultiword(keywords), " OR ")
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	var records []trend.Record
	for _, subreddit := range c.Subreddits {
		posts, err := c.search(ctx, subreddit, query, limit)
		if err != nil {
			if len(records) == 0 {
				return trend.Skipped(trend.PlatformReddit, fmt.Sprintf("r/%s search failed: %v", subreddit, err))
			}
			break
		}

		for _, p := range posts {
			created := time.Unix(int64(p.CreatedUTC), 0).UTC()
			if created.Before(since) {
				continue
			}
			records = append(records, recordFromPost(p, created))
		}
	}

	return trend.OK(trend.PlatformReddit, records)
}

func (c *RedditConnector) search(ctx context.Context, subreddit, query string, limit int) ([]redditPost, error) {
	endpoint := fmt.Sprintf(
		"%s/r/%s/search.json?q=%s&sort=new&t=week&restrict_sr=1&limit=%d",
		c.BaseURL, subreddit, url.QueryEscape(query), limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit API returned status code %d", resp.StatusCode)
	}

	var searchResp redditSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit API response: %w", err)
	}

	posts := make([]redditPost, 0, len(searchResp.Data.Children))
	for _, child := range searchResp.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

func recordFromPost(p redditPost, created time.Time) trend.Record {
	text := strings.TrimSpace(p.Title + " " + p.SelfText)
	return trend.Record{
		ID:         p.ID,
		Platform:   trend.PlatformReddit,
		CreatedAt:  &created,
		Title:      p.Title,
		Text:       text,
		Author:     p.Author,
		URL:        "https://www.reddit.com" + p.Permalink,
		Lang:       "en",
		Engagement: p.Score + p.NumComments,
		RawMetrics: map[string]any{
			"score":        p.Score,
			"num_comments": p.NumComments,
		},
	}
}

func quoteMultiword(keywords []string) []string {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(k, " ") {
			terms = append(terms, `"`+k+`"`)
		} else {
			terms = append(terms, k)
		}
	}
	return terms
}
