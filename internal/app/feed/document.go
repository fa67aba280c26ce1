package feed

import (
	"time"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

// Document is the complete feed of one format.
type Document struct {
	Format string
	Rss    model.Rss
}

// WithTimestamps returns a copy of d with pubDate and lastBuildDate set
// in RFC 1123 format with numeric zone.
func (d Document) WithTimestamps(pubDate, lastBuildDate time.Time) Document {
	out := d
	out.Rss.Channel = d.Rss.Channel.Clone()
	out.Rss.Channel.PubDate = pubDate.Format(time.RFC1123Z)
	out.Rss.Channel.LastBuildDate = lastBuildDate.Format(time.RFC1123Z)
	return out
}

// Len returns the number of items in the document.
func (d Document) Len() int {
	return len(d.Rss.Channel.Items)
}
