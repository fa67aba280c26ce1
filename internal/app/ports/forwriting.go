package ports

import "context"

// ForWriting stores a rendered feed under name and returns the path or
// location it was written to.
type ForWriting interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}
