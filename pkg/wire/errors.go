package wire

import (
	"github.com/pkg/errors"
)

// Error kinds returned by the decoders in this package.
//
// Decoders return these values directly, so a failure deep inside a nested
// structure reaches the caller unchanged. Errors that carry extra detail wrap
// one of them and can be matched with errors.Is or classified with Kind.
var (
	// ErrInsufficientBytes is returned when the buffer ends before a
	// fixed-width or length-prefixed field is fully present.
	ErrInsufficientBytes = errors.New("insufficient bytes")

	// ErrInvalidFormat is returned for input that is well framed but
	// semantically invalid, such as a TxID hex string of the wrong length.
	ErrInvalidFormat = errors.New("invalid format")
)

// ErrorKind classifies errors produced by this package.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInsufficientBytes
	KindInvalidFormat
)

var kindStrings = map[ErrorKind]string{
	KindUnknown:           "UNKNOWN",
	KindInsufficientBytes: "INSUFFICIENT_BYTES",
	KindInvalidFormat:     "INVALID_FORMAT",
}

func (k ErrorKind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return kindStrings[KindUnknown]
}

// Kind returns the kind of err, looking through any wrapping.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInsufficientBytes):
		return KindInsufficientBytes
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	}
	return KindUnknown
}

// invalidFormatf wraps ErrInvalidFormat with a formatted message.
func invalidFormatf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidFormat, format, args...)
}
