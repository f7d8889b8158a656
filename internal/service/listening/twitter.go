// internal/service/listening/twitter.go

package listening

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"trendwatch/internal/domain/trend"
)

const xPageSize = 100

// bearerAuthorizer injects app-only bearer auth into API requests.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// XConnector fetches recent short-form posts from the X search API.
// Without a bearer token the connector reports itself skipped.
type XConnector struct {
	client *twitter.Client
}

// NewXConnector creates the connector. An empty token leaves the client
// nil, which turns every fetch into a skipped result.
func NewXConnector(bearerToken string) *XConnector {
	c := &XConnector{}
	if bearerToken != "" {
		c.client = &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     &http.Client{Timeout: 10 * time.Second},
			Host:       "https://api.twitter.com",
		}
	}
	return c
}

// Platform returns the platform tag this source produces.
func (c *XConnector) Platform() string { return trend.PlatformX }

// Fetch runs a boolean-OR keyword search over the trailing window,
// excluding reshares and restricting to English, paginating until the
// API stops returning a next token or limit is reached. Engagement is
// the sum of like, reshare and reply counts.
func (c *XConnector) Fetch(ctx context.Context, keywords []string, days, limit int) trend.FetchResult {
	if c.client == nil {
		return trend.Skipped(trend.PlatformX, "X bearer token not configured")
	}
	if len(keywords) == 0 {
		return trend.Empty(trend.PlatformX)
	}

	end := time.Now().UTC().Add(-30 * time.Second)
	start := end.Add(-time.Duration(days) * 24 * time.Hour)
	opts := twitter.TweetRecentSearchOpts{
		StartTime:  start,
		EndTime:    end,
		MaxResults: xPageSize,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldLanguage,
		},
		Expansions: []twitter.Expansion{twitter.ExpansionAuthorID},
		UserFields: []twitter.UserField{twitter.UserFieldUserName},
	}

	query := buildKeywordQuery(keywords)
	var records []trend.Record
	for {
		resp, err := c.client.TweetRecentSearch(ctx, query, opts)
		if err != nil {
			return trend.Skipped(trend.PlatformX, fmt.Sprintf("X search failed: %v", err))
		}

		users := map[string]string{}
		if resp.Raw.Includes != nil {
			for _, u := range resp.Raw.Includes.Users {
				users[u.ID] = u.UserName
			}
		}
		for _, t := range resp.Raw.Tweets {
			records = append(records, recordFromTweet(t, users))
		}

		if resp.Meta == nil || resp.Meta.NextToken == "" || len(records) >= limit {
			break
		}
		opts.NextToken = resp.Meta.NextToken
	}

	return trend.OK(trend.PlatformX, records)
}

// buildKeywordQuery joins keywords into an OR group, quoting multiword
// terms, and appends the reshare and language restrictions.
func buildKeywordQuery(keywords []string) string {
	return "(" + strings.Join(quoteMultiword(keywords), " OR ") + ") -is:retweet lang:en"
}

func recordFromTweet(t *twitter.TweetObj, users map[string]string) trend.Record {
	var createdAt *time.Time
	if ts, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
		utc := ts.UTC()
		createdAt = &utc
	}

	engagement := 0
	metrics := map[string]any{}
	if t.PublicMetrics != nil {
		engagement = t.PublicMetrics.Likes + t.PublicMetrics.Retweets + t.PublicMetrics.Replies
		metrics = map[string]any{
			"like_count":    t.PublicMetrics.Likes,
			"retweet_count": t.PublicMetrics.Retweets,
			"reply_count":   t.PublicMetrics.Replies,
			"quote_count":   t.PublicMetrics.Quotes,
		}
	}

	author := users[t.AuthorID]
	url := ""
	if author != "" {
		url = fmt.Sprintf("https://x.com/%s/status/%s", author, t.ID)
	}

	lang := t.Language
	if lang == "" {
		lang = "en"
	}

	return trend.Record{
		ID:         t.ID,
		Platform:   trend.PlatformX,
		CreatedAt:  createdAt,
		Title:      headline(t.Text),
		Text:       t.Text,
		Author:     author,
		URL:        url,
		Lang:       lang,
		Engagement: engagement,
		RawMetrics: metrics,
	}
}

// headline trims post text to a short title.
func headline(text string) string {
	runes := []rune(text)
	if len(runes) <= 120 {
		return text
	}
	return string(runes[:120])
}
