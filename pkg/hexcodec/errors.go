package hexcodec

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindEncoding reports a character or byte outside the selected encoding's range.
	KindEncoding
	// KindMalformedHex reports a structurally invalid hex token.
	KindMalformedHex
	// KindInvalidSequence reports well-formed bytes that do not form valid text.
	KindInvalidSequence
	// KindSettings reports settings that cannot be used for conversion.
	KindSettings
)

var (
	ErrEncoding        = errors.New("encoding error")
	ErrMalformedHex    = errors.New("malformed hex")
	ErrInvalidSequence = errors.New("invalid byte sequence")
	ErrInvalidSettings = errors.New("invalid settings")
)

func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "EncodingError"
	case KindMalformedHex:
		return "MalformedHexError"
	case KindInvalidSequence:
		return "InvalidSequenceError"
	case KindSettings:
		return "SettingsError"
	default:
		return "UnknownError"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindEncoding:
		return ErrEncoding
	case KindMalformedHex:
		return ErrMalformedHex
	case KindInvalidSequence:
		return ErrInvalidSequence
	case KindSettings:
		return ErrInvalidSettings
	default:
		return nil
	}
}

// Error is returned by every failing conversion. Position is the 1-based token
// number for malformed hex, Offset the byte or character offset the message refers
// to; both are -1 when not applicable.
type Error struct {
	Kind     Kind
	Token    string
	Position int
	Offset   int
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel matching the error's kind, so errors.Is(err,
// ErrMalformedHex) works without a type assertion.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the Kind of err, or KindUnknown if err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func encodingErrorf(offset int, format string, args ...any) *Error {
	return &Error{Kind: KindEncoding, Position: -1, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func malformedErrorf(token string, position, offset int, format string, args ...any) *Error {
	return &Error{Kind: KindMalformedHex, Token: token, Position: position, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func sequenceErrorf(offset int, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidSequence, Position: -1, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func settingsErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindSettings, Position: -1, Offset: -1, Message: fmt.Sprintf(format, args...)}
}
