package geom

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error categories. Concrete errors wrap one of these so callers can test
// with errors.Is regardless of the message.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrShapeInvalid        = errors.New("invalid shape")
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
	ErrMalformedCoordinate = errors.New("malformed coordinate")
	ErrMalformedWKT        = errors.New("malformed wkt")
)

func categoryf(category error, format string, args ...interface{}) error {
	return errors.Wrapf(category, format, args...)
}

func shapeErrorf(format string, args ...interface{}) error {
	return categoryf(ErrShapeInvalid, format, args...)
}

// ParseError locates a WKT parse failure in the input.
type ParseError struct {
	cause error
	pos   int
	str   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at pos %d\n%s\n%s^", e.cause, e.pos, e.str, strings.Repeat(" ", e.pos))
}

func (e *ParseError) Unwrap() error { return e.cause }

// Pos returns the byte offset of the failure.
func (e *ParseError) Pos() int { return e.pos }

// Category names the class of err: "argument", "shape", "unsupported",
// "coordinate", "syntax", or "error" when err is none of them.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "argument"
	case errors.Is(err, ErrShapeInvalid):
		return "shape"
	case errors.Is(err, ErrUnsupportedGeometry):
		return "unsupported"
	case errors.Is(err, ErrMalformedCoordinate):
		return "coordinate"
	case errors.Is(err, ErrMalformedWKT):
		return "syntax"
	}
	return "error"
}
