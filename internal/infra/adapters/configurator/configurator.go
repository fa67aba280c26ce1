// configurator is an adapter for loading the show description from a
// TOML or YAML file. It implements the ports.ForConfiguring interface.
// Unknown keys are rejected in both formats.
package configurator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sa6mwa/podfeeds/internal/app/model"
	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig     error = errors.New("invalid podcast configuration")
	ErrUnknownFileFormat error = errors.New("unknown configuration file format")
)

var defaultSpecfile string = "podcast.toml"

const defaultFilename = "feed-{{ .Format }}.xml"

// configurator.New returns a local file-based configurator that
// satisfies the ports.ForConfiguring port interface. The decoder is
// chosen by file extension (.toml, .yaml or .yml).
func New(specFile string) ports.ForConfiguring {
	if specFile == "" {
		specFile = defaultSpecfile
	}
	return &forConfiguring{
		specFile: specFile,
	}
}

// Implements the ports.ForConfiguring interface.
type forConfiguring struct {
	specFile string
}

func (c *forConfiguring) Load(ctx context.Context) (*model.Show, error) {
	l := logger.FromContext(ctx)
	f, err := os.Open(c.specFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	show, err := Decode(f, filepath.Ext(c.specFile))
	if err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", c.specFile, err)
	}
	if err := Validate(show); err != nil {
		return nil, fmt.Errorf("%s: %w", c.specFile, err)
	}
	l.Debug("Loaded podcast configuration", "file", c.specFile, "episodes", len(show.Episodes), "formats", show.Formats)
	return show, nil
}

// Decode reads a show from r. ext selects the format and may be given
// with or without the leading dot.
func Decode(r io.Reader, ext string) (*model.Show, error) {
	var show model.Show
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&show); err != nil {
			var strictErr *toml.StrictMissingError
			if errors.As(err, &strictErr) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strictErr.String())
			}
			return nil, err
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&show); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFileFormat, ext)
	}
	// Set defaults
	if strings.TrimSpace(show.Output.Filename) == "" {
		show.Output.Filename = defaultFilename
	}
	return &show, nil
}

// Validate checks what the feed engine relies on: a title, a hosting
// base URL, and a non-empty set of unique formats.
func Validate(show *model.Show) error {
	if strings.TrimSpace(show.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(show.HostingBaseURL) == "" {
		return fmt.Errorf("%w: hosting-base-url must not be empty", ErrInvalidConfig)
	}
	if len(show.Formats) == 0 {
		return fmt.Errorf("%w: formats must list at least one format", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(show.Formats))
	for _, f := range show.Formats {
		if strings.TrimSpace(f) == "" || strings.Contains(f, ".") {
			return fmt.Errorf("%w: invalid format %q", ErrInvalidConfig, f)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: format %q is listed more than once", ErrInvalidConfig, f)
		}
		seen[f] = struct{}{}
	}
	for i, e := range show.Episodes {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("%w: episode %d has no title", ErrInvalidConfig, i+1)
		}
	}
	return nil
}
