package ports

import (
	"context"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

// ForRendering serializes a feed document into XML text. Render must be
// safe for concurrent use, documents of different formats are rendered
// in parallel.
type ForRendering interface {
	Render(ctx context.Context, doc *model.Rss) ([]byte, error)
}
