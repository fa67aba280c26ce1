package model

import (
	"path"
	"strings"
)

// This is only for the configuration, not implementing AWS handler logic.

const DefaultStorageClass = "STANDARD"

// Publish configures where rendered feeds are uploaded.
type Publish struct {
	Profile      string `yaml:"profile,omitempty" toml:"profile,omitempty"`
	Region       string `yaml:"region,omitempty" toml:"region,omitempty"`
	Bucket       string `yaml:"bucket,omitempty" toml:"bucket,omitempty"`
	Prefix       string `yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	StorageClass string `yaml:"storage-class,omitempty" toml:"storage-class,omitempty"`
}

// Enabled reports whether a bucket has been configured.
func (p *Publish) Enabled() bool {
	return strings.TrimSpace(p.Bucket) != ""
}

// Key returns the object key for name under the configured prefix.
func (p *Publish) Key(name string) string {
	prefix := strings.Trim(p.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func (p *Publish) GetStorageClass() string {
	if strings.TrimSpace(p.StorageClass) == "" {
		return DefaultStorageClass
	}
	return strings.ToUpper(strings.TrimSpace(p.StorageClass))
}
