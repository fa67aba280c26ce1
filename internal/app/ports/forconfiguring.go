package ports

import (
	"context"

	"github.com/sa6mwa/podfeeds/internal/app/model"
)

// ForConfiguring loads and validates the show description. Any error
// returned by Load is fatal for the whole run.
type ForConfiguring interface {
	Load(ctx context.Context) (*model.Show, error)
}
