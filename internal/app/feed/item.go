package feed

import (
	"strings"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

// unknownLength is written as the enclosure length, file sizes are
// never inspected.
const unknownLength = "0"

// AssembleItem builds the feed entry for one accepted file of episode.
// The hosted URL is used as link, enclosure URL and guid.
func AssembleItem(episode *model.Episode, route Route, show *model.Show) model.Item {
	return model.Item{
		Title:       episode.Title,
		Link:        route.URL,
		Description: episode.Description,
		Author:      show.AuthorEmail,
		Enclosure: model.Enclosure{
			URL:    route.URL,
			Length: unknownLength,
			Type:   ResolveMIME(route.Format).String(),
		},
		Guid: model.Guid{
			Value:       route.URL,
			IsPermaLink: "true",
		},
		PubDate: episode.PublishDate,
		ItunesItem: model.ItunesItem{
			Author:   show.Author,
			Image:    model.ItunesImage{Href: show.Logo.URL},
			Duration: episode.Duration.String(),
			Explicit: model.Explicit(episode.IsExplicit(show.Explicit)),
			Subtitle: episode.Subtitle,
			Summary:  episode.Description,
			Keywords: strings.Join(episode.Keywords, ", "),
		},
	}
}
