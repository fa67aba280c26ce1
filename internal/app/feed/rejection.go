package feed

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFileName error = errors.New("file name has no format extension")
	ErrUnsupportedFormat error = errors.New("format is not declared by the show")
	ErrDuplicateFormat   error = errors.New("episode already has a file of this format")
	ErrSerialization     error = errors.New("unable to serialize feed")
)

// Kind classifies what the router decided for a single file.
type Kind int

const (
	Accepted Kind = iota
	DuplicateFormat
	UnsupportedFormat
	MalformedFileName
)

func (k Kind) String() string {
	switch k {
	case Accepted:
		return "Accepted"
	case DuplicateFormat:
		return "DuplicateFormat"
	case UnsupportedFormat:
		return "UnsupportedFormat"
	case MalformedFileName:
		return "MalformedFileName"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rejection is a diagnostic for a file that produced no item. It
// satisfies error and unwraps to one of the Err* sentinels.
type Rejection struct {
	Kind    Kind
	Episode string
	File    string
	Format  string
}

func (r Rejection) Error() string {
	switch r.Kind {
	case DuplicateFormat:
		return fmt.Sprintf("episode %q already has a file of format %q, skipping %q", r.Episode, r.Format, r.File)
	case UnsupportedFormat:
		return fmt.Sprintf("format %q is not in the listed formats, skipping %q in episode %q", r.Format, r.File, r.Episode)
	case MalformedFileName:
		return fmt.Sprintf("no format extension in %q, skipping it in episode %q", r.File, r.Episode)
	}
	return fmt.Sprintf("%s: %q in episode %q", r.Kind, r.File, r.Episode)
}

func (r Rejection) Unwrap() error {
	switch r.Kind {
	case DuplicateFormat:
		return ErrDuplicateFormat
	case UnsupportedFormat:
		return ErrUnsupportedFormat
	case MalformedFileName:
		return ErrMalformedFileName
	}
	return nil
}
