// Package model defines the format-agnostic document tree shared by every
// parser and renderer in officedoc: sections, blocks, paragraphs, tables and
// the resource table that backs image/audio/video/chart/ole export.
package model

import "fmt"

// ErrKind enumerates the abstract error kinds a parser or renderer can
// surface. It is deliberately flat and closed: officedoc's failure modes
// are fully enumerable up front, so one tagged struct replaces a family
// of error types.
type ErrKind int

const (
	// ErrIo indicates a file-system or reader failure.
	ErrIo ErrKind = iota
	// ErrUnknownFormat indicates magic bytes absent or no recognizable content type.
	ErrUnknownFormat
	// ErrUnsupportedFormat indicates a known-unsupported variant.
	ErrUnsupportedFormat
	// ErrZipArchive indicates the container is malformed.
	ErrZipArchive
	// ErrXmlParse indicates any XML structural failure.
	ErrXmlParse
	// ErrInvalidData indicates a semantic violation beyond recovery.
	ErrInvalidData
	// ErrMissingComponent indicates a required part is absent.
	ErrMissingComponent
	// ErrEncoding indicates decoding from bytes to UTF-8 failed.
	ErrEncoding
	// ErrStyleNotFound is reserved for strict style lookups.
	ErrStyleNotFound
	// ErrResourceNotFound is reserved for strict resource lookups.
	ErrResourceNotFound
	// ErrEncrypted indicates a detected encryption marker; parse aborts.
	ErrEncrypted
	// ErrRender indicates a serializer failure.
	ErrRender
)

func (k ErrKind) String() string {
	switch k {
	case ErrIo:
		return "Io"
	case ErrUnknownFormat:
		return "UnknownFormat"
	case ErrUnsupportedFormat:
		return "UnsupportedFormat"
	case ErrZipArchive:
		return "ZipArchive"
	case ErrXmlParse:
		return "XmlParse"
	case ErrInvalidData:
		return "InvalidData"
	case ErrMissingComponent:
		return "MissingComponent"
	case ErrEncoding:
		return "Encoding"
	case ErrStyleNotFound:
		return "StyleNotFound"
	case ErrResourceNotFound:
		return "ResourceNotFound"
	case ErrEncrypted:
		return "Encrypted"
	case ErrRender:
		return "Render"
	default:
		return "Unknown"
	}
}

// Error is officedoc's single error type. It implements Unwrap so
// errors.Is/errors.As traverse the chain.
type Error struct {
	Kind   ErrKind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "officedoc: " + e.Kind.String()
	}
	return fmt.Sprintf("officedoc: %s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// NewError builds an Error of the given kind, wrapping cause (may be nil).
func NewError(kind ErrKind, cause error, msg string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(msg, args...), cause: cause}
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write `errors.Is(err, model.NewError(model.ErrMissingComponent, nil, ""))`-
// style checks, but more commonly use [IsKind].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var e *Error
	for err != nil {
		if asErr, ok := err.(*Error); ok {
			e = asErr
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
