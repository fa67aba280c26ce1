package feed

import (
	"strings"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

// Outcome is the router's decision for one file. URL is only set when
// Kind is Accepted.
type Outcome struct {
	Kind   Kind
	File   string
	Format string
	URL    string
}

// Route is an accepted file of an episode.
type Route struct {
	Format string
	File   string
	URL    string
}

// FormatOf returns the text after the final dot in file. ok is false
// when there is no dot or nothing follows it.
func FormatOf(file string) (format string, ok bool) {
	i := strings.LastIndexByte(file, '.')
	if i < 0 || i == len(file)-1 {
		return "", false
	}
	return file[i+1:], true
}

// HostedURL joins baseURL and file with exactly one slash.
func HostedURL(baseURL, file string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(file, "/")
}

// Router decides which feed every file of an episode belongs to.
type Router struct {
	declared map[string]struct{}
	baseURL  string
}

func NewRouter(declared []string, baseURL string) *Router {
	r := &Router{
		declared: make(map[string]struct{}, len(declared)),
		baseURL:  baseURL,
	}
	for _, f := range declared {
		r.declared[f] = struct{}{}
	}
	return r
}

// Classify decides the outcome for file. used holds the formats the
// episode has already been given a file for.
func (r *Router) Classify(file string, used map[string]struct{}) Outcome {
	format, ok := FormatOf(file)
	if !ok {
		return Outcome{Kind: MalformedFileName, File: file}
	}
	if _, declared := r.declared[format]; !declared {
		return Outcome{Kind: UnsupportedFormat, File: file, Format: format}
	}
	if _, taken := used[format]; taken {
		return Outcome{Kind: DuplicateFormat, File: file, Format: format}
	}
	return Outcome{Kind: Accepted, File: file, Format: format, URL: HostedURL(r.baseURL, file)}
}

// Route partitions the files of episode by format in file order. The
// first file of a format wins, every other file ends up in rejections.
func (r *Router) Route(episode *model.Episode) (accepted []Route, rejections []Rejection) {
	used := make(map[string]struct{}, len(r.declared))
	for _, file := range episode.Files {
		o := r.Classify(file, used)
		switch o.Kind {
		case Accepted:
			used[o.Format] = struct{}{}
			accepted = append(accepted, Route{Format: o.Format, File: o.File, URL: o.URL})
		default:
			rejections = append(rejections, Rejection{
				Kind:    o.Kind,
				Episode: episode.Title,
				File:    o.File,
				Format:  o.Format,
			})
		}
	}
	return accepted, rejections
}
