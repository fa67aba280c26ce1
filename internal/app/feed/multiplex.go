package feed

import (
	"sort"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

// Result is the output of Generate. Documents only has keys for formats
// that ended up with at least one item.
type Result struct {
	Documents  map[string]Document
	Rejections []Rejection
}

// Formats returns the keys of Documents in sorted order.
func (r *Result) Formats() []string {
	formats := make([]string, 0, len(r.Documents))
	for f := range r.Documents {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Generate routes every file of every episode in show order and builds
// one document per format that received items. Rejected files are
// returned as diagnostics, they never stop the run.
func Generate(show *model.Show) *Result {
	router := NewRouter(show.Formats, show.HostingBaseURL)
	items := make(map[string][]model.Item)
	result := &Result{
		Documents: make(map[string]Document),
	}
	for i := range show.Episodes {
		episode := &show.Episodes[i]
		routes, rejections := router.Route(episode)
		result.Rejections = append(result.Rejections, rejections...)
		for _, route := range routes {
			items[route.Format] = append(items[route.Format], AssembleItem(episode, route, show))
		}
	}
	header := AssembleHeader(show)
	for format, list := range items {
		if len(list) == 0 {
			continue
		}
		result.Documents[format] = header.Document(format, list)
	}
	return result
}
