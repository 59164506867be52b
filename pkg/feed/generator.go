// Package feed renders outgoing feeds: the ranked digest as RSS 2.0 and
// the configured source list as OPML.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/feedpulse/pkg/domain"
)

// Generator creates RSS and OPML documents from domain objects
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed from the digest top stories
func (g *Generator) GenerateRSS(d domain.Digest) (string, error) {
	rssItems := make([]*RSSItem, 0, len(d.TopStories))
	for _, item := range d.TopStories {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	doc := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "FeedPulse - Top Stories",
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Ranked digest of %d updates", d.Summary.Metrics.TotalUpdates),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss/digest", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: d.Timestamp.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a ranked digest entry to an RSS item
func (g *Generator) convertToRSSItem(item domain.RankedItem) *RSSItem {
	desc := fmt.Sprintf("Score: %.1f/10, impact %s", item.Significance, item.Impact)
	if item.Summary != "" {
		desc += "\n\n" + item.Summary
	}

	pubDate := ""
	if !item.Published.IsZero() {
		pubDate = item.Published.Format(time.RFC1123Z)
	}

	return &RSSItem{
		Title:       fmt.Sprintf("[%.1f] %s", item.Significance, item.Title),
		Link:        item.URL,
		GUID:        item.URL,
		Description: desc,
		PubDate:     pubDate,
		Categories:  []string{item.ContentType, item.Source},
	}
}

// GenerateOPML creates an OPML file with the configured source subscriptions
func (g *Generator) GenerateOPML(sources []domain.Source) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(sources))
	for _, src := range sources {
		if !src.Enabled {
			continue
		}
		outlines = append(outlines, outline{
			Text:    src.Name,
			Title:   src.Name,
			Type:    "rss",
			XMLUrl:  src.URL,
			HTMLUrl: src.Website,
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "FeedPulse Source Subscriptions",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
