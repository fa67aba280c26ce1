package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sa6mwa/mp3duration"
)

// Explicit returns the itunes:explicit value for b.
func Explicit(b bool) string {
	if b {
		return "Explicit"
	}
	return "Clean"
}

// The Apple RSS has a specific duration format.
type ItunesDuration struct {
	time.Duration
}

func (d *ItunesDuration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var buf string
	if err := unmarshal(&buf); err != nil {
		return err
	}
	return d.parse(buf)
}

// UnmarshalText is used by the TOML decoder.
func (d *ItunesDuration) UnmarshalText(text []byte) error {
	return d.parse(string(text))
}

func (d *ItunesDuration) parse(s string) error {
	durationString := strings.TrimSpace(s)
	if durationString == "" {
		d.Duration = 0
		return nil
	}
	// itunes:duration is hh:mm:ss, mm:ss or a number of seconds.
	values := strings.Split(durationString, ":")
	if len(values) > 3 {
		return fmt.Errorf("unmarshal error: duration must be HH:MM:SS, MM:SS or seconds, not %s", durationString)
	}
	var total time.Duration
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("unmarshal error: duration %s: %w", durationString, err)
		}
		if n < 0 {
			return fmt.Errorf("unmarshal error: negative value in duration %s", durationString)
		}
		total = total*60 + time.Duration(n)*time.Second
	}
	d.Duration = total
	return nil
}

// Format duration according to Itunes podcast Atom specification (HH:MM:SS).
func (d ItunesDuration) MarshalYAML() (interface{}, error) {
	return mp3duration.FormatDuration(d.Duration), nil
}

// Return duration as string in Itunes Duration HH:MM:SS format.
func (d ItunesDuration) String() string {
	return mp3duration.FormatDuration(d.Duration)
}
