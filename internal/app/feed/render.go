package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"golang.org/x/sync/errgroup"
)

// maxParallelRenders bounds the number of documents rendered at once.
const maxParallelRenders = 4

// Rendered holds the output of RenderAll. A format is either in Feeds
// or in Errors, never both.
type Rendered struct {
	Feeds  map[string][]byte
	Errors map[string]error
}

// RenderAll renders every document with r. A failing document is
// recorded in Errors wrapped with ErrSerialization and does not stop
// the other formats. Documents not yet rendered when ctx is done are
// recorded with the context error instead.
func RenderAll(ctx context.Context, r ports.ForRendering, docs map[string]Document) *Rendered {
	out := &Rendered{
		Feeds:  make(map[string][]byte, len(docs)),
		Errors: make(map[string]error),
	}
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(maxParallelRenders)
	for format, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				defer mu.Unlock()
				out.Errors[format] = fmt.Errorf("feed %q not rendered: %w", format, err)
				return nil
			}
			b, err := r.Render(ctx, &doc.Rss)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				out.Errors[format] = fmt.Errorf("%w %q: %w", ErrSerialization, format, err)
				return nil
			}
			out.Feeds[format] = b
			return nil
		})
	}
	g.Wait()
	return out
}
