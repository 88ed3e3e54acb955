package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a compile failure. Every kind is an authoring error in the
// input, never a transient fault.
type Kind int

const (
	Unknown Kind = iota
	MalformedRhythm
	MalformedPattern
	MissingLibraryEntry
	MissingContext
	IndexOutOfRange
	ReservedKeyConflict
	MalformedScore
	DepthExceeded
)

var kindNames = map[Kind]string{
	Unknown:             "Unknown",
	MalformedRhythm:     "MalformedRhythm",
	MalformedPattern:    "MalformedPattern",
	MissingLibraryEntry: "MissingLibraryEntry",
	MissingContext:      "MissingContext",
	IndexOutOfRange:     "IndexOutOfRange",
	ReservedKeyConflict: "ReservedKeyConflict",
	MalformedScore:      "MalformedScore",
	DepthExceeded:       "DepthExceeded",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error carries the kind of failure and the fragment of input that caused it.
type Error struct {
	Kind     Kind
	Fragment string
	Msg      string
}

func (e *Error) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s (in %q)", e.Kind, e.Msg, e.Fragment)
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of message or fragment.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMalformedRhythm     = &Error{Kind: MalformedRhythm, Msg: "malformed rhythm"}
	ErrMalformedPattern    = &Error{Kind: MalformedPattern, Msg: "malformed pattern"}
	ErrMissingLibraryEntry = &Error{Kind: MissingLibraryEntry, Msg: "missing library entry"}
	ErrMissingContext      = &Error{Kind: MissingContext, Msg: "missing context"}
	ErrIndexOutOfRange     = &Error{Kind: IndexOutOfRange, Msg: "index out of range"}
	ErrReservedKeyConflict = &Error{Kind: ReservedKeyConflict, Msg: "reserved key conflict"}
	ErrMalformedScore      = &Error{Kind: MalformedScore, Msg: "malformed score"}
	ErrDepthExceeded       = &Error{Kind: DepthExceeded, Msg: "depth exceeded"}
)

// NewError builds a kinded error with a stack trace attached.
func NewError(kind Kind, fragment string, format string, args ...any) error {
	return errors.WithStack(&Error{
		Kind:     kind,
		Fragment: fragment,
		Msg:      fmt.Sprintf(format, args...),
	})
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
