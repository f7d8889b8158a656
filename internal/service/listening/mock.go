// internal/service/listening/mock.go

package listening

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"trendwatch/internal/domain/trend"
)

// mockTopics pairs a synthetic headline with the category it belongs to.
var mockTopics = []struct {
	Title    string
	Category string
}{
	{"GA4 consent mode v2 impact", "analytics_ai"},
	{"YouTube Shorts CTR hacks", "video_audio"},
	{"TikTok user search growth", "social_media_marketing"},
	{"Meta Advantage+ shopping best practices", "paid_media"},
	{"Newsletter growth via LinkedIn", "content_marketing"},
	{"Google core update volatility", "seo"},
	{"Shopify one-page checkout test", "ecommerce"},
	{"Rebrand case study: B2B SaaS", "branding_pr"},
	{"Local SEO changes in map pack", "local_international"},
	{"Privacy-first attribution models", "privacy_compliance"},
}

// MockGenerator produces synthetic, pre-enriched records for offline
// development and testing. In mock mode it replaces every connector.
// Safe for concurrent use: rand.Rand is not, and mock-mode ingests can
// run from parallel requests.
type MockGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewMockGenerator seeds a generator from the clock.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate returns n records spread over the trailing week. Duplicate
// topics are expected and collapse at the store only when ids collide,
// which the uuid suffix prevents here.
func (g *MockGenerator) Generate(n int) []trend.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	platforms := []string{trend.PlatformX, trend.PlatformReddit, trend.PlatformGTrends}
	now := time.Now().UTC()

	records := make([]trend.Record, 0, n)
	for i := 0; i < n; i++ {
		topic := mockTopics[g.rand.Intn(len(mockTopics))]
		platform := platforms[g.rand.Intn(len(platforms))]
		created := now.Add(-time.Duration(g.rand.Intn(24*7)) * time.Hour)

		records = append(records, trend.Record{
			ID:                fmt.Sprintf("mock-%s-%d-%s", platform, i, uuid.NewString()[:8]),
			Platform:          platform,
			CreatedAt:         &created,
			Title:             topic.Title,
			Text:              topic.Title + " - discussion and tips",
			URL:               "https://example.com/mock",
			Lang:              "en",
			Engagement:        5 + g.rand.Intn(996),
			RawMetrics:        map[string]any{"mock": true},
			MarketingRelevant: true,
			Category:          topic.Category,
			SentimentCompound: -0.2 + g.rand.Float64(),
		})
	}
	return records
}
