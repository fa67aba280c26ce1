package model

import (
	"os"
	"path/filepath"
	"strings"
)

// Show is the root of a podcast description. Everything the feed
// engine needs is in here, it is read-only once loaded.
type Show struct {
	Title          string   `yaml:"title" toml:"title"`
	Description    string   `yaml:"description" toml:"description"`
	Subtitle       string   `yaml:"subtitle" toml:"subtitle"`
	Author         string   `yaml:"author" toml:"author"`
	AuthorEmail    string   `yaml:"author-email" toml:"author-email"`
	Website        string   `yaml:"website" toml:"website"`
	Language       string   `yaml:"language" toml:"language"`
	Copyright      string   `yaml:"copyright" toml:"copyright"`
	Webmaster      string   `yaml:"webmaster" toml:"webmaster"`
	ManagingEditor string   `yaml:"managing-editor" toml:"managing-editor"`
	Formats        []string `yaml:"formats" toml:"formats"`
	HostingBaseURL string   `yaml:"hosting-base-url" toml:"hosting-base-url"`
	Keywords       []string `yaml:"keywords" toml:"keywords"`
	Explicit       bool     `yaml:"explicit" toml:"explicit"`
	Logo           Logo     `yaml:"logo" toml:"logo"`
	Category       string   `yaml:"category" toml:"category"`
	// Subcategories are nested under Category in the itunes:category
	// element.
	Subcategories []string `yaml:"subcategories,omitempty" toml:"subcategories,omitempty"`
	// Markdown enables rendering of show and episode descriptions from
	// markdown into html.
	Markdown bool      `yaml:"markdown,omitempty" toml:"markdown,omitempty"`
	Output   Output    `yaml:"output,omitempty" toml:"output,omitempty"`
	Publish  Publish   `yaml:"publish,omitempty" toml:"publish,omitempty"`
	Episodes []Episode `yaml:"episodes" toml:"episodes"`
}

type Logo struct {
	URL   string `yaml:"url" toml:"url"`
	Title string `yaml:"title" toml:"title"`
	Link  string `yaml:"link" toml:"link"`
}

// Output controls where the rendered feeds are written. Filename is a
// text/template executed with a value carrying .Format and .Title.
type Output struct {
	Directory string `yaml:"directory,omitempty" toml:"directory,omitempty"`
	Filename  string `yaml:"filename,omitempty" toml:"filename,omitempty"`
}

// Clone returns a deep copy of the show. Adapters that rewrite
// descriptions work on a clone so the loaded show stays untouched.
func (s *Show) Clone() *Show {
	c := *s
	c.Formats = append([]string(nil), s.Formats...)
	c.Keywords = append([]string(nil), s.Keywords...)
	c.Subcategories = append([]string(nil), s.Subcategories...)
	c.Episodes = make([]Episode, len(s.Episodes))
	for i := range s.Episodes {
		c.Episodes[i] = s.Episodes[i].Clone()
	}
	return &c
}

func (o *Output) DirectoryExpanded() string {
	return resolvetilde(o.Directory)
}

// resolvetilde returns path where initial tilde (~) is replaced by
// os.UserHomeDir().
func resolvetilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(dirname, path[2:])
	}
	return path
}
