package feed

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

const (
	RSSVersion = "2.0"
	Generator  = "podfeeds"
)

// Header is the channel metadata shared by every format of a show. It
// holds no items and is never modified after AssembleHeader returns,
// documents get their own copy.
type Header struct {
	channel model.Channel
}

// AssembleHeader builds the shared channel header. pubDate and
// lastBuildDate are left empty, see Document.WithTimestamps.
func AssembleHeader(show *model.Show) Header {
	category := model.ItunesCategory{Text: show.Category}
	for _, sub := range show.Subcategories {
		category.Subcategories = append(category.Subcategories, model.ItunesCategory{Text: sub})
	}
	return Header{channel: model.Channel{
		Title:          show.Title,
		Link:           show.Website,
		Description:    show.Description,
		Language:       show.Language,
		Copyright:      show.Copyright,
		ManagingEditor: show.ManagingEditor,
		WebMaster:      show.Webmaster,
		Generator:      Generator,
		Image: model.Image{
			URL:   show.Logo.URL,
			Title: fmt.Sprintf("%s Logo", show.Title),
			Link:  show.Website,
		},
		ItunesChannel: model.ItunesChannel{
			Author:     show.Author,
			Categories: []model.ItunesCategory{category},
			Image:      model.ItunesImage{Href: show.Logo.URL},
			Explicit:   model.Explicit(show.Explicit),
			Owner: model.ItunesOwner{
				Name:  show.Author,
				Email: show.AuthorEmail,
			},
			Subtitle: show.Subtitle,
			Summary:  show.Description,
			Keywords: strings.Join(show.Keywords, ", "),
		},
	}}
}

// Channel returns a copy of the header channel without items.
func (h Header) Channel() model.Channel {
	return h.channel.Clone()
}

// Document pairs a copy of the header with the items of one format.
func (h Header) Document(format string, items []model.Item) Document {
	ch := h.channel.Clone()
	ch.Items = append([]model.Item(nil), items...)
	return Document{
		Format: format,
		Rss: model.Rss{
			Namespaces: namespaceAttrs(),
			Version:    RSSVersion,
			Channel:    ch,
		},
	}
}

func namespaceAttrs() []xml.Attr {
	ns := model.Namespaces()
	attrs := make([]xml.Attr, 0, len(ns))
	for _, n := range ns {
		attrs = append(attrs, xml.Attr{
			Name:  xml.Name{Local: "xmlns:" + n.Prefix},
			Value: n.URI,
		})
	}
	return attrs
}
