package hexcodec

import (
	"strings"
	"unicode/utf8"
)

// Decode parses hex written under settings back into text. The prefix is optional
// on every byte-pair and hex digits are case-insensitive. Blank input yields an
// empty result. Any failure aborts the whole call.
func Decode(input string, settings Settings) (string, error) {
	s, err := settings.Normalize()
	if err != nil {
		return "", err
	}
	data, err := decodeBytes(input, s)
	if err != nil {
		return "", err
	}
	return bytesText(data, s.Encoding)
}

// DecodeBytes validates the hex structure of input and returns the raw bytes
// without interpreting them as text.
func DecodeBytes(input string, settings Settings) ([]byte, error) {
	s, err := settings.Normalize()
	if err != nil {
		return nil, err
	}
	return decodeBytes(input, s)
}

func decodeBytes(input string, s Settings) ([]byte, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return []byte{}, nil
	}

	out := make([]byte, 0, len(trimmed)/2)
	for i, token := range tokenize(trimmed, s.Delimiter) {
		var err error
		out, err = appendToken(out, token, i+1, s.Prefix)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// tokenize splits on the delimiter. Whitespace delimiters split on any run of
// whitespace; other delimiters drop blank tokens.
func tokenize(input, delimiter string) []string {
	switch {
	case delimiter == "":
		return []string{input}
	case strings.TrimSpace(delimiter) == "":
		return strings.Fields(input)
	}

	parts := strings.Split(input, delimiter)
	tokens := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// appendToken walks token as a run of [prefix]HH units.
func appendToken(dst []byte, token string, position int, prefix string) ([]byte, error) {
	for i := 0; i < len(token); i += 2 {
		if prefix != "" && hasPrefixFold(token[i:], prefix) {
			i += len(prefix)
			if i == len(token) {
				return nil, malformedErrorf(token, position, i,
					"token %q at position %d has a prefix without hex digits", token, position)
			}
		}

		hi, ok := hexValue(token[i])
		if !ok {
			return nil, invalidHexChar(token, position, i)
		}
		if i+1 == len(token) {
			return nil, malformedErrorf(token, position, i,
				"token %q at position %d has an odd number of hex digits", token, position)
		}
		lo, ok := hexValue(token[i+1])
		if !ok {
			return nil, invalidHexChar(token, position, i+1)
		}
		dst = append(dst, hi<<4|lo)
	}
	return dst, nil
}

func invalidHexChar(token string, position, offset int) *Error {
	r, _ := utf8.DecodeRuneInString(token[offset:])
	return malformedErrorf(token, position, offset,
		"invalid hex character %q in token %q at position %d", r, token, position)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isHexDigit(c byte) bool {
	_, ok := hexValue(c)
	return ok
}

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func bytesText(data []byte, enc Encoding) (string, error) {
	if enc == EncodingASCII {
		for i, c := range data {
			if c > 0x7f {
				return "", encodingErrorf(i, "byte 0x%02X at offset %d is outside the ASCII range", c, i)
			}
		}
		return string(data), nil
	}

	if !utf8.Valid(data) {
		offset := invalidUTF8Offset(data)
		return "", sequenceErrorf(offset, "invalid UTF-8 sequence at byte %d (0x%02X)", offset, data[offset])
	}
	return string(data), nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
