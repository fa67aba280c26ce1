package ports

import (
	"context"
	"errors"
)

var (
	// ports.ErrNotFound is returned by adapters implementing
	// ForUploading when a key, name or file does not exist in the
	// storage backend.
	ErrNotFound error = errors.New("no such file or key")
)

type ForUploadingRequest struct {
	// Bucket or store to upload to.
	Store string
	// Key or name of target. If empty, default to the From field.
	To string
	// From is the path to upload from (local disk or URI depending on
	// adapter implementation).
	From        string
	ContentType string
	// StorageClass only used for AWS. Can be STANDARD,
	// REDUCED_REDUNDANCY, STANDARD_IA, ONEZONE_IA, INTELLIGENT_TIERING,
	// GLACIER, DEEP_ARCHIVE, and GLACIER_IR. If empty, STANDARD is the
	// default.
	StorageClass string
}

type ForUploading interface {
	Upload(ctx context.Context, request *ForUploadingRequest) error
	// Diff returns a unified diff between the object stored under
	// keyOrName and fileToDiff. An empty string means no difference,
	// ErrNotFound means there is nothing to compare with yet.
	Diff(ctx context.Context, bucketOrStore, keyOrName, fileToDiff string) (string, error)
}
