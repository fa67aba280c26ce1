// writer stores rendered feeds on local disk. Files are replaced
// atomically so a reader never sees a half written feed. Implements
// the ports.ForWriting interface.
package writer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/sa6mwa/podfeeds/internal/app/humanreadable"
	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
)

var (
	ErrFilenameMissing error = errors.New("empty or missing filename given")
)

type forWriting struct {
	directory string
}

// writer.New returns a ports.ForWriting writing into directory (the
// current directory if empty). The directory is created on first
// write.
func New(directory string) ports.ForWriting {
	if strings.TrimSpace(directory) == "" {
		directory = "."
	}
	return &forWriting{directory: directory}
}

func (w *forWriting) Write(ctx context.Context, name string, data []byte) (string, error) {
	l := logger.FromContext(ctx)
	if strings.TrimSpace(name) == "" {
		return "", ErrFilenameMissing
	}
	target := filepath.Join(w.directory, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("unable to create directory for %s: %w", target, err)
	}
	pendingFile, err := renameio.NewPendingFile(target, renameio.WithPermissions(0o644))
	if err != nil {
		return "", fmt.Errorf("unable to create %s: %w", target, err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			l.Debug("Cleanup of pending file failed", "file", target, "error", err)
		}
	}()
	if _, err := pendingFile.Write(data); err != nil {
		return "", fmt.Errorf("unable to write %s: %w", target, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return "", fmt.Errorf("unable to replace %s: %w", target, err)
	}
	l.Info("Wrote feed", "file", target, "size", len(data), "humanSize", humanreadable.IEC(int64(len(data))))
	return target, nil
}
