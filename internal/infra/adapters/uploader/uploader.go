// uploader publishes rendered feeds to Amazon S3 using the AWS v1 SDK.
// Implements the ports.ForUploading interface.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gabriel-vasile/mimetype"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/sa6mwa/podfeeds/internal/app/humanreadable"
	"github.com/sa6mwa/podfeeds/internal/app/model"
	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
)

var (
	ErrNilPointerRequest error = errors.New("received nil pointer as request")
	ErrFilenameMissing   error = errors.New("empty or missing filename given")
	ErrNotAFeed          error = errors.New("file is not an rss feed")
)

const rssMediaType = "application/rss+xml"

type forUploading struct {
	session *session.Session
}

func New(publish *model.Publish) ports.ForUploading {
	s := session.Must(session.NewSessionWithOptions(session.Options{
		Profile: publish.Profile,
		Config: aws.Config{
			Region: aws.String(publish.Region),
		},
	}))
	return &forUploading{
		session: s,
	}
}

// ContentType detects the content-type of filename.
func ContentType(filename string) (string, error) {
	mimetype.SetLimit(1024 * 1024)
	mimeType, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	return mimeType.String(), nil
}

// FeedContentType detects the content-type of filename and fails with
// ErrNotAFeed unless it is an rss document.
func FeedContentType(filename string) (string, error) {
	mimetype.SetLimit(1024 * 1024)
	mimeType, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	if !mimeType.Is(rssMediaType) {
		return "", fmt.Errorf("%w: %s is %s", ErrNotAFeed, filename, mimeType.String())
	}
	return rssMediaType, nil
}

// Upload r.From as r.To to S3 bucket r.Store. If ContentType is empty
// in r, function will attempt to detect the content-type of the file
// in the r.From field.
func (u *forUploading) Upload(ctx context.Context, r *ports.ForUploadingRequest) error {
	l := logger.FromContext(ctx)
	if r == nil {
		return ErrNilPointerRequest
	}
	if strings.TrimSpace(r.From) == "" {
		return ErrFilenameMissing
	}
	if strings.TrimSpace(r.ContentType) == "" {
		var err error
		r.ContentType, err = ContentType(r.From)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(r.To) == "" {
		r.To = path.Base(r.From)
	}
	if r.StorageClass == "" {
		r.StorageClass = model.DefaultStorageClass
	}
	s3path := "s3://" + path.Join(r.Store, r.To)
	fi, err := os.Stat(r.From)
	if err != nil {
		return err
	}
	l.Info("Uploading to S3", "file", r.From, "to", s3path, "storageClass", r.StorageClass, "size", fi.Size(), "humanSize", humanreadable.IEC(fi.Size()))
	f, err := os.Open(r.From)
	if err != nil {
		return err
	}
	defer f.Close()
	uploader := s3manager.NewUploader(u.session)
	result, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(r.Store),
		Key:          aws.String(r.To),
		ContentType:  aws.String(r.ContentType),
		Body:         f,
		StorageClass: aws.String(r.StorageClass),
	})
	if err != nil {
		return fmt.Errorf("unable to upload %s: %w", s3path, err)
	}
	l.Info("Upload succeeded", "location", result.Location)
	return nil
}

// Diff downloads key from bucket and returns a unified diff against
// the content of fileToDiff. ports.ErrNotFound is returned if the key
// does not exist.
func (u *forUploading) Diff(ctx context.Context, bucket, key, fileToDiff string) (string, error) {
	l := logger.FromContext(ctx)
	fileContent, err := os.ReadFile(fileToDiff)
	if err != nil {
		return "", err
	}
	s3path := "s3://" + path.Join(bucket, key)
	downloader := s3manager.NewDownloader(u.session)
	buf := aws.NewWriteAtBuffer([]byte{})
	size, err := downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) {
			switch awsErr.Code() {
			case "NotFound", "NoSuchKey":
				return "", fmt.Errorf("%s: %w", s3path, ports.ErrNotFound)
			}
		}
		return "", err
	}
	l.Debug("Buffered successfully", "path", s3path, "bytes", size)
	return UnifiedDiff(s3path, fileToDiff, string(buf.Bytes()), string(fileContent)), nil
}

// UnifiedDiff returns the unified diff from before to after, or an
// empty string if they are equal.
func UnifiedDiff(fromName, toName, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(fromName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, before, edits))
}
