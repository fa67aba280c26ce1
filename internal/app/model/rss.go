package model

import "encoding/xml"

const (
	NamespaceAtom    = "http://www.w3.org/2005/Atom"
	NamespaceItunes  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	NamespaceItunesU = "http://www.itunesu.com/feed"
)

// Namespace is a prefix bound on the root rss element.
type Namespace struct {
	Prefix string
	URI    string
}

// Namespaces returns the bindings declared on every feed, ordered by
// prefix.
func Namespaces() []Namespace {
	return []Namespace{
		{Prefix: "atom", URI: NamespaceAtom},
		{Prefix: "itunes", URI: NamespaceItunes},
		{Prefix: "itunesu", URI: NamespaceItunesU},
	}
}

// Rss is the document tree of a single podcast feed. Prefixed element
// names are written verbatim, the prefixes are bound by the xmlns
// attributes in Namespaces.
type Rss struct {
	XMLName    xml.Name   `xml:"rss"`
	Namespaces []xml.Attr `xml:",any,attr"`
	Version    string     `xml:"version,attr"`
	Channel    Channel    `xml:"channel"`
}

type Channel struct {
	Title          string `xml:"title"`
	Link           string `xml:"link"`
	Description    string `xml:"description"`
	Language       string `xml:"language"`
	Copyright      string `xml:"copyright"`
	ManagingEditor string `xml:"managingEditor"`
	WebMaster      string `xml:"webMaster"`
	PubDate        string `xml:"pubDate"`
	LastBuildDate  string `xml:"lastBuildDate"`
	Generator      string `xml:"generator"`
	Image          Image  `xml:"image"`
	ItunesChannel
	Items []Item `xml:"item"`
}

type Image struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

// ItunesChannel is the channel level directory-extension block.
type ItunesChannel struct {
	Author     string           `xml:"itunes:author"`
	Categories []ItunesCategory `xml:"itunes:category"`
	Image      ItunesImage      `xml:"itunes:image"`
	Explicit   string           `xml:"itunes:explicit"`
	Owner      ItunesOwner      `xml:"itunes:owner"`
	Subtitle   string           `xml:"itunes:subtitle"`
	Summary    string           `xml:"itunes:summary"`
	Keywords   string           `xml:"itunes:keywords"`
}

type ItunesCategory struct {
	Text          string           `xml:"text,attr"`
	Subcategories []ItunesCategory `xml:"itunes:category"`
}

type ItunesImage struct {
	Href string `xml:"href,attr"`
}

type ItunesOwner struct {
	Name  string `xml:"itunes:name"`
	Email string `xml:"itunes:email"`
}

type Item struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Author      string    `xml:"author"`
	Enclosure   Enclosure `xml:"enclosure"`
	Guid        Guid      `xml:"guid"`
	PubDate     string    `xml:"pubDate"`
	ItunesItem
}

type Enclosure struct {
	URL    string `xml:"url,attr"`
	Length string `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type Guid struct {
	Value       string `xml:",chardata"`
	IsPermaLink string `xml:"isPermaLink,attr"`
}

// ItunesItem is the item level directory-extension block.
type ItunesItem struct {
	Author   string      `xml:"itunes:author"`
	Image    ItunesImage `xml:"itunes:image"`
	Duration string      `xml:"itunes:duration"`
	Explicit string      `xml:"itunes:explicit"`
	Subtitle string      `xml:"itunes:subtitle"`
	Summary  string      `xml:"itunes:summary"`
	Keywords string      `xml:"itunes:keywords"`
}

// Clone returns a copy of the channel sharing no slices with c.
func (c Channel) Clone() Channel {
	out := c
	out.Categories = cloneCategories(c.Categories)
	if c.Items != nil {
		out.Items = append([]Item(nil), c.Items...)
	}
	return out
}

func cloneCategories(in []ItunesCategory) []ItunesCategory {
	if in == nil {
		return nil
	}
	out := make([]ItunesCategory, len(in))
	for i, c := range in {
		out[i] = ItunesCategory{
			Text:          c.Text,
			Subcategories: cloneCategories(c.Subcategories),
		}
	}
	return out
}
