// parser prepares show and episode descriptions before the feeds are
// assembled. It implements the ports.ForDescribing interface.
package parser

import (
	"context"
	"errors"
	"strings"

	"github.com/sa6mwa/podfeeds/internal/app/model"
	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
)

var (
	ErrNilShow error = errors.New("received nil pointer show")
)

// forDescribing implements the ports.ForDescribing port (interface).
type forDescribing struct{}

func New() ports.ForDescribing {
	return &forDescribing{}
}

// Describe returns a clone of show where descriptions are rendered
// from markdown to html (when show.Markdown is set) and episode
// chapters are appended as a chapter list.
func (p *forDescribing) Describe(ctx context.Context, show *model.Show) (*model.Show, error) {
	l := logger.FromContext(ctx)
	if show == nil {
		return nil, ErrNilShow
	}
	out := show.Clone()
	if out.Markdown {
		out.Description = strings.TrimSpace(MarkdownToHTML(out.Description))
	}
	for i := range out.Episodes {
		e := &out.Episodes[i]
		if out.Markdown {
			e.Description = strings.TrimSpace(MarkdownToHTML(e.Description))
		}
		if chaps := chapterList(e, out.Markdown); chaps != "" {
			e.Description += chaps
			l.Debug("Appended chapters", "episode", e.Title, "chapters", len(e.Chapters))
		}
	}
	return out, nil
}

// chapterList renders the chapters of e, wrapped in a pre element when
// the description is html.
func chapterList(e *model.Episode, html bool) string {
	chaps := SpotifyChapters(e.Chapters)
	if chaps == "" {
		return ""
	}
	if html {
		return "\n<pre>\n" + chaps + "</pre>\n"
	}
	return "\n" + chaps
}
