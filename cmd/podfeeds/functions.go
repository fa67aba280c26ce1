package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/sa6mwa/podfeeds/internal/app/feed"
	"github.com/sa6mwa/podfeeds/internal/app/model"
	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/asker"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/configurator"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/parser"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/renderer"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/uploader"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/writer"
	"github.com/urfave/cli/v2"
)

var (
	ErrRejectedFiles   error = errors.New("one or more files were rejected")
	ErrRenderFailed    error = errors.New("one or more feeds could not be rendered")
	ErrPublishDisabled error = errors.New("upload requested but no publish bucket is configured")
)

// filenameData is passed to the output filename template.
type filenameData struct {
	Format string
	Title  string
}

// feedFilenames executes the filename template once per format and
// fails if two formats would be written to the same file.
func feedFilenames(tmpl string, show *model.Show, formats []string) (map[string]string, error) {
	t, err := template.New("filename").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse output filename template: %w", err)
	}
	names := make(map[string]string, len(formats))
	taken := make(map[string]string, len(formats))
	for _, format := range formats {
		buf := &bytes.Buffer{}
		if err := t.Execute(buf, filenameData{Format: format, Title: show.Title}); err != nil {
			return nil, fmt.Errorf("unable to execute output filename template: %w", err)
		}
		name := strings.TrimSpace(buf.String())
		if name == "" {
			return nil, fmt.Errorf("output filename template gave an empty name for format %q", format)
		}
		if other, ok := taken[name]; ok {
			return nil, fmt.Errorf("formats %q and %q would both be written to %s, use {{ .Format }} in the output filename", other, format, name)
		}
		taken[name] = format
		names[format] = name
	}
	return names, nil
}

// loadShow loads the podcast file and prepares its descriptions.
func loadShow(ctx context.Context, specFile string) (*model.Show, error) {
	show, err := configurator.New(specFile).Load(ctx)
	if err != nil {
		return nil, err
	}
	return parser.New().Describe(ctx, show)
}

func logRejections(ctx context.Context, rejections []feed.Rejection) {
	l := logger.FromContext(ctx)
	for _, r := range rejections {
		l.Warn("Skipping file", "kind", r.Kind.String(), "episode", r.Episode, "file", r.File, "format", r.Format, "reason", r.Error())
	}
}

func check(c *cli.Context) error {
	ctx := c.Context
	l := logger.FromContext(ctx)
	show, err := loadShow(ctx, c.String("spec"))
	if err != nil {
		return err
	}
	result := feed.Generate(show)
	for _, format := range result.Formats() {
		l.Info("Feed", "format", format, "items", result.Documents[format].Len(), "type", feed.ResolveMIME(format).String())
	}
	for _, format := range show.Formats {
		if _, ok := result.Documents[format]; !ok {
			l.Warn("No episode has a file of this format, feed will not be generated", "format", format)
		}
		if feed.ResolveMIME(format) == feed.MimeUnknown {
			l.Warn("Unknown media type, enclosure type will be empty", "format", format)
		}
	}
	logRejections(ctx, result.Rejections)
	if n := len(result.Rejections); n > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrRejectedFiles, n)
	}
	l.Info("All files accepted", "episodes", len(show.Episodes))
	return nil
}

func generate(c *cli.Context) error {
	ctx := c.Context
	l := logger.FromContext(ctx)
	dryRun := c.Bool("dry-run")

	show, err := loadShow(ctx, c.String("spec"))
	if err != nil {
		return err
	}
	if c.Bool("upload") && !show.Publish.Enabled() {
		return ErrPublishDisabled
	}

	result := feed.Generate(show)
	logRejections(ctx, result.Rejections)
	if len(result.Documents) == 0 {
		l.Warn("No feeds to generate, no episode has a file in any of the listed formats", "formats", show.Formats)
		return nil
	}

	docs := result.Documents
	if c.Bool("timestamp") {
		now := time.Now().UTC()
		stamped := make(map[string]feed.Document, len(docs))
		for format, doc := range docs {
			stamped[format] = doc.WithTimestamps(now, now)
		}
		docs = stamped
	}

	formats := result.Formats()
	names, err := feedFilenames(show.Output.Filename, show, formats)
	if err != nil {
		return err
	}

	rendered := feed.RenderAll(ctx, renderer.New(""), docs)
	for _, format := range formats {
		if err, ok := rendered.Errors[format]; ok {
			l.Error("Unable to render feed", "format", format, "error", err)
		}
	}

	if dryRun {
		for _, format := range formats {
			if b, ok := rendered.Feeds[format]; ok {
				l.Info("Dry-run, writing feed to stdout", "format", format, "file", names[format])
				if _, err := os.Stdout.Write(b); err != nil {
					return err
				}
			}
		}
		return renderErr(rendered)
	}

	directory := c.String("output-dir")
	if directory == "" {
		directory = show.Output.DirectoryExpanded()
	}
	w := writer.New(directory)
	written := make(map[string]string, len(rendered.Feeds))
	for _, format := range formats {
		b, ok := rendered.Feeds[format]
		if !ok {
			continue
		}
		p, err := w.Write(ctx, names[format], b)
		if err != nil {
			return err
		}
		written[format] = p
	}

	if c.Bool("upload") {
		up := uploader.New(&show.Publish)
		ask := asker.New(dryRun, c.Bool("force"))
		for _, format := range formats {
			p, ok := written[format]
			if !ok {
				continue
			}
			if err := publish(ctx, up, ask, &show.Publish, names[format], p, c.Bool("force")); err != nil {
				return err
			}
		}
	}
	return renderErr(rendered)
}

// publish uploads file as name unless the published copy is identical.
// The file content is sniffed first so nothing but an rss feed is
// uploaded.
func publish(ctx context.Context, up ports.ForUploading, ask ports.ForAsking, p *model.Publish, name, file string, force bool) error {
	l := logger.FromContext(ctx)
	contentType, err := uploader.FeedContentType(file)
	if err != nil {
		return err
	}
	key := p.Key(name)
	diff, err := up.Diff(ctx, p.Bucket, key, file)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		l.Info("Feed has not been published before", "bucket", p.Bucket, "key", key)
	case err != nil:
		return err
	case diff == "" && !force:
		l.Info("Published feed is up to date, not uploading", "bucket", p.Bucket, "key", key)
		return nil
	case diff != "":
		fmt.Fprint(os.Stderr, diff)
	}
	if !ask.Ask(ctx, "Upload %s to s3://%s/%s?", file, p.Bucket, key) {
		return nil
	}
	return up.Upload(ctx, &ports.ForUploadingRequest{
		Store:        p.Bucket,
		To:           key,
		From:         file,
		ContentType:  contentType,
		StorageClass: p.GetStorageClass(),
	})
}

func renderErr(rendered *feed.Rendered) error {
	if len(rendered.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d", ErrRenderFailed, len(rendered.Errors), len(rendered.Errors)+len(rendered.Feeds))
}
