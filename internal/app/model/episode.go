package model

import "github.com/sa6mwa/id3v24"

type Episode struct {
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	Subtitle    string `yaml:"subtitle" toml:"subtitle"`
	// Files are routed to a feed by their extension.
	Files    []string       `yaml:"files" toml:"files"`
	Duration ItunesDuration `yaml:"duration" toml:"duration"`
	// PublishDate is passed through verbatim, it should be RFC 2822.
	PublishDate string   `yaml:"publish-date" toml:"publish-date"`
	Keywords    []string `yaml:"keywords" toml:"keywords"`
	// Explicit overrides the show's explicit flag when set.
	Explicit *bool            `yaml:"explicit,omitempty" toml:"explicit,omitempty"`
	Chapters []id3v24.Chapter `yaml:"chapters,omitempty" toml:"chapters,omitempty"`
}

// IsExplicit returns the episode override or fallback if there is none.
func (e *Episode) IsExplicit(fallback bool) bool {
	if e.Explicit == nil {
		return fallback
	}
	return *e.Explicit
}

func (e Episode) Clone() Episode {
	c := e
	c.Files = append([]string(nil), e.Files...)
	c.Keywords = append([]string(nil), e.Keywords...)
	c.Chapters = append([]id3v24.Chapter(nil), e.Chapters...)
	if e.Explicit != nil {
		v := *e.Explicit
		c.Explicit = &v
	}
	return c
}
