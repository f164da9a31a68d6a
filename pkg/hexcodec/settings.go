package hexcodec

import (
	"fmt"
	"strings"
	"unicode"
)

// Mode selects the conversion direction.
type Mode string

const (
	ModeTextToHex Mode = "text-to-hex"
	ModeHexToText Mode = "hex-to-text"
)

// ParseMode accepts the canonical mode names and the aliases "encode" and "decode".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text-to-hex", "encode":
		return ModeTextToHex, nil
	case "hex-to-text", "decode":
		return ModeHexToText, nil
	default:
		return "", fmt.Errorf("unknown mode %q: must be one of: text-to-hex, hex-to-text", s)
	}
}

// Flip returns the opposite direction.
func (m Mode) Flip() Mode {
	if m == ModeHexToText {
		return ModeTextToHex
	}
	return ModeHexToText
}

// Encoding controls how text maps to bytes.
type Encoding string

const (
	EncodingUTF8  Encoding = "UTF-8"
	EncodingASCII Encoding = "ASCII"
)

// ParseEncoding canonicalises an encoding name. Matching is case-insensitive.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "ascii", "us-ascii":
		return EncodingASCII, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q: must be one of: UTF-8, ASCII", s)
	}
}

// Settings holds the formatting rules for a single conversion.
type Settings struct {
	Delimiter string
	Prefix    string
	Uppercase bool
	Encoding  Encoding
	// LiveMode is only read by the session; conversions ignore it.
	LiveMode bool
}

// DefaultSettings returns space-delimited, unprefixed, uppercase UTF-8.
func DefaultSettings() Settings {
	return Settings{
		Delimiter: " ",
		Uppercase: true,
		Encoding:  EncodingUTF8,
	}
}

// Normalize fills in defaults and rejects settings that cannot round-trip.
// An empty encoding means UTF-8.
func (s Settings) Normalize() (Settings, error) {
	if s.Encoding == "" {
		s.Encoding = EncodingUTF8
	} else {
		enc, err := ParseEncoding(string(s.Encoding))
		if err != nil {
			return Settings{}, settingsErrorf("%v", err)
		}
		s.Encoding = enc
	}

	if i := strings.IndexFunc(s.Delimiter, isHexRune); i >= 0 {
		return Settings{}, settingsErrorf("delimiter %q contains hex digit %q", s.Delimiter, s.Delimiter[i])
	}

	// Tokens are split on the delimiter and trimmed before the prefix is stripped.
	switch {
	case strings.TrimSpace(s.Prefix) != s.Prefix:
		return Settings{}, settingsErrorf("prefix %q starts or ends with whitespace", s.Prefix)
	case s.Delimiter != "" && strings.TrimSpace(s.Delimiter) == "" && strings.IndexFunc(s.Prefix, unicode.IsSpace) >= 0:
		return Settings{}, settingsErrorf("prefix %q contains whitespace, which is the delimiter", s.Prefix)
	case s.Delimiter != "" && strings.Contains(s.Prefix, s.Delimiter):
		return Settings{}, settingsErrorf("prefix %q contains delimiter %q", s.Prefix, s.Delimiter)
	}
	return s, nil
}

func isHexRune(r rune) bool {
	return r < 0x80 && isHexDigit(byte(r))
}
