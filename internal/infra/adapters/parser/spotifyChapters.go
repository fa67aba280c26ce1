package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/sa6mwa/id3v24"
)

// SpotifyChapters returns one "(MM:SS) Title" line per chapter, or
// "(HH:MM:SS) Title" for every line if any chapter starts at or after
// one hour. An empty string is returned when there are no chapters or
// when a start time can not be parsed. See
// https://support.spotify.com/us/creators/article/creating-and-managing-chapters/
func SpotifyChapters(chapters []id3v24.Chapter) string {
	if len(chapters) == 0 {
		return ""
	}
	starts := make([]time.Time, len(chapters))
	layout := "04:05"
	for i, c := range chapters {
		s, err := id3v24.StringTimeToTime(c.Start)
		if err != nil {
			return ""
		}
		starts[i] = s
		if s.Hour() > 0 {
			layout = "15:04:05"
		}
	}
	var b strings.Builder
	for i, c := range chapters {
		fmt.Fprintf(&b, "(%s) %s\n", starts[i].Format(layout), strings.TrimSpace(c.Title))
	}
	return b.String()
}
