package feed

import "strings"

// MimeType is a canonical media type, the zero value means unknown.
type MimeType string

const (
	MimeUnknown MimeType = ""
	MimeMPEG    MimeType = "audio/mpeg"
	MimeMP4     MimeType = "audio/mp4"
	MimeFLAC    MimeType = "audio/flac"
)

var mimeTypes = map[string]MimeType{
	"mp3":  MimeMPEG,
	"m4a":  MimeMP4,
	"m4b":  MimeMP4,
	"flac": MimeFLAC,
}

// ResolveMIME maps a format identifier to its media type. Unknown
// identifiers resolve to MimeUnknown, never an error.
func ResolveMIME(format string) MimeType {
	return mimeTypes[strings.ToLower(strings.TrimSpace(format))]
}

func (m MimeType) String() string {
	return string(m)
}
