package ports

import (
	"context"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

// ForDescribing prepares descriptions before feeds are assembled (for
// example markdown to html). Implementations must return a new show
// and leave the input untouched.
type ForDescribing interface {
	Describe(ctx context.Context, show *model.Show) (*model.Show, error)
}
