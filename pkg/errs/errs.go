// Package errs holds the error taxonomy shared by every genom codec.
//
// Decoders wrap one of the sentinels below with eris so callers can classify
// a failure with errors.Is while still getting a useful message and stack.
// Stream failures (short reads, reader errors) are not given a sentinel of
// their own: they surface as a wrapped io.ErrUnexpectedEOF or the reader's
// own error.
package errs

import (
	"errors"

	"github.com/rotisserie/eris"
)

var (
	// ErrUnknownVersion marks a recognized construct at a revision the codec
	// does not implement. Callers may substitute an opaque fallback.
	ErrUnknownVersion = eris.New("unknown version")

	// ErrInvalidStructure marks a violated structural invariant. Fatal for
	// the enclosing record or file.
	ErrInvalidStructure = eris.New("invalid structure")

	// ErrInvalidString marks text that cannot be represented in the
	// Windows-1252 code page.
	ErrInvalidString = eris.New("invalid string")

	// ErrEnumUnparseable marks an enumeration discriminant outside the
	// declared member set. Never fatal: decoders keep the raw value.
	ErrEnumUnparseable = eris.New("enum value unparseable")
)

// Recoverable reports whether err can be handled by preserving the affected
// data opaquely instead of failing the enclosing file.
func Recoverable(err error) bool {
	return errors.Is(err, ErrUnknownVersion) || errors.Is(err, ErrEnumUnparseable)
}
