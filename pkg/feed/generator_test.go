package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpulse/pkg/domain"
)

func rankedItem(title, url string, sig float64, impact domain.Impact, published time.Time) domain.RankedItem {
	return domain.RankedItem{
		ScoredItem: domain.ScoredItem{
			Item: domain.Item{
				Source:      "Tech Blog",
				Title:       title,
				URL:         url,
				Published:   published,
				ContentType: domain.ContentTypeBlog,
				Priority:    1,
			},
			Significance: sig,
			Summary:      "Short recap of the story.",
		},
		RankScore: sig * 0.6,
		Impact:    impact,
	}
}

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com")

	pubTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	digest := domain.Digest{
		TopStories: []domain.RankedItem{
			rankedItem("Big Launch", "https://example.com/launch", 8.5, domain.ImpactHigh, pubTime),
			rankedItem("Model Update", "https://example.com/update", 6.2, domain.ImpactMedium, pubTime.Add(-2*time.Hour)),
		},
		Summary: domain.DigestSummary{
			Metrics: domain.DigestMetrics{TotalUpdates: 17},
		},
		Timestamp: pubTime,
	}

	t.Run("full digest", func(t *testing.T) {
		rss, err := generator.GenerateRSS(digest)
		require.NoError(t, err)

		// check basic structure
		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>FeedPulse - Top Stories</title>`)
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `<description>Ranked digest of 17 updates</description>`)

		// check atom self link (namespace is on the link element)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://example.com/rss/digest" rel="self" type="application/rss+xml"></link>`)

		// check items
		assert.Contains(t, rss, `<title>[8.5] Big Launch</title>`)
		assert.Contains(t, rss, `<link>https://example.com/launch</link>`)
		assert.Contains(t, rss, `<guid>https://example.com/launch</guid>`)
		assert.Contains(t, rss, `Score: 8.5/10, impact high`)
		assert.Contains(t, rss, `Short recap of the story.`)
		assert.Contains(t, rss, `<category>blog</category>`)
		assert.Contains(t, rss, `<category>Tech Blog</category>`)

		// check second item
		assert.Contains(t, rss, `<title>[6.2] Model Update</title>`)
		assert.Contains(t, rss, `Score: 6.2/10, impact medium`)
	})

	t.Run("empty digest", func(t *testing.T) {
		rss, err := generator.GenerateRSS(domain.Digest{Timestamp: pubTime})
		require.NoError(t, err)

		assert.Contains(t, rss, `<channel>`)
		assert.Contains(t, rss, `<description>Ranked digest of 0 updates</description>`)
		assert.NotContains(t, rss, `<item>`)
	})

	t.Run("generator with trailing slash in base URL", func(t *testing.T) {
		gen := NewGenerator("https://example.com/")
		rss, err := gen.GenerateRSS(digest)
		require.NoError(t, err)

		// should not have double slashes
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `href="https://example.com/rss/digest"`)
		assert.NotContains(t, rss, `https://example.com//`)
	})
}

func TestGenerator_convertToRSSItem(t *testing.T) {
	generator := NewGenerator("https://example.com")

	t.Run("published item", func(t *testing.T) {
		item := rankedItem("Big Launch", "https://example.com/launch", 9.0, domain.ImpactHigh,
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

		rssItem := generator.convertToRSSItem(item)

		assert.Equal(t, "[9.0] Big Launch", rssItem.Title)
		assert.Equal(t, "https://example.com/launch", rssItem.Link)
		assert.Equal(t, "https://example.com/launch", rssItem.GUID)
		assert.Equal(t, "Sun, 01 Jun 2025 12:00:00 +0000", rssItem.PubDate)
		assert.Equal(t, []string{"blog", "Tech Blog"}, rssItem.Categories)
		assert.Contains(t, rssItem.Description, "Score: 9.0/10, impact high")
		assert.Contains(t, rssItem.Description, "Short recap of the story.")
	})

	t.Run("missing publish date", func(t *testing.T) {
		item := rankedItem("Undated", "https://example.com/undated", 5.5, domain.ImpactMedium, time.Time{})

		rssItem := generator.convertToRSSItem(item)
		assert.Empty(t, rssItem.PubDate)
	})

	t.Run("no summary", func(t *testing.T) {
		item := rankedItem("Bare", "https://example.com/bare", 5.0, domain.ImpactMedium, time.Time{})
		item.Summary = ""

		rssItem := generator.convertToRSSItem(item)
		assert.Equal(t, "Score: 5.0/10, impact medium", rssItem.Description)
	})
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := NewGenerator("https://example.com")

	sources := []domain.Source{
		{
			Name:        "Tech News",
			URL:         "https://technews.com/feed.xml",
			Website:     "https://technews.com",
			ContentType: domain.ContentTypeBlog,
			Priority:    1,
			Enabled:     true,
		},
		{
			Name:        "Science Daily",
			URL:         "https://sciencedaily.com/rss",
			ContentType: domain.ContentTypeBlog,
			Priority:    2,
			Enabled:     true,
		},
		{
			Name:        "Disabled Feed",
			URL:         "https://disabled.com/feed",
			ContentType: domain.ContentTypeBlog,
			Priority:    3,
			Enabled:     false,
		},
	}

	opml, err := generator.GenerateOPML(sources)
	require.NoError(t, err)

	// check basic structure
	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>FeedPulse Source Subscriptions</title>`)

	// check enabled sources are included
	assert.Contains(t, opml, `text="Tech News"`)
	assert.Contains(t, opml, `title="Tech News"`)
	assert.Contains(t, opml, `type="rss"`)
	assert.Contains(t, opml, `xmlUrl="https://technews.com/feed.xml"`)
	assert.Contains(t, opml, `htmlUrl="https://technews.com"`)

	// website is optional, the attribute disappears with it
	assert.Contains(t, opml, `text="Science Daily"`)
	assert.Contains(t, opml, `xmlUrl="https://sciencedaily.com/rss"`)
	assert.NotContains(t, opml, `htmlUrl="https://sciencedaily.com"`)

	// check disabled source is not included
	assert.NotContains(t, opml, "Disabled Feed")
	assert.NotContains(t, opml, "disabled.com")
}

func TestRSSXMLStructure(t *testing.T) {
	// test that the XML structure is correctly formed
	generator := NewGenerator("https://example.com")

	item := rankedItem("Test & Article <with> Special Characters", "https://example.com/article", 8.0,
		domain.ImpactHigh, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	item.Source = "Author & Co."
	item.Summary = "Summary with <html> tags"

	digest := domain.Digest{
		TopStories: []domain.RankedItem{item},
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	rss, err := generator.GenerateRSS(digest)
	require.NoError(t, err)

	// XML special characters should be escaped
	assert.Contains(t, rss, "Test &amp; Article &lt;with&gt; Special Characters")
	assert.Contains(t, rss, "Author &amp; Co.")
	assert.Contains(t, rss, "Summary with &lt;html&gt; tags")

	// verify it's valid XML by checking key elements are present and properly nested
	assert.Regexp(t, `(?s)<rss[^>]*>.*<channel>.*</channel>.*</rss>`, rss)
}
