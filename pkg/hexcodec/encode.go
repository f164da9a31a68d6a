package hexcodec

import (
	"strings"
	"unicode/utf8"
)

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// Encode renders input as hex byte-pairs. Each pair gets its own prefix and pairs
// are joined by the delimiter. Empty input yields an empty result.
func Encode(input string, settings Settings) (string, error) {
	s, err := settings.Normalize()
	if err != nil {
		return "", err
	}
	if input == "" {
		return "", nil
	}

	data, err := textBytes(input, s.Encoding)
	if err != nil {
		return "", err
	}
	return formatBytes(data, s), nil
}

func textBytes(input string, enc Encoding) ([]byte, error) {
	if enc == EncodingASCII {
		out := make([]byte, 0, len(input))
		index := 0
		for offset, r := range input {
			if r == utf8.RuneError {
				if _, size := utf8.DecodeRuneInString(input[offset:]); size == 1 {
					return nil, encodingErrorf(offset, "invalid UTF-8 input at byte %d", offset)
				}
			}
			if r > 0x7f {
				return nil, encodingErrorf(index, "character %q (U+%04X) at position %d is not ASCII", r, r, index)
			}
			out = append(out, byte(r))
			index++
		}
		return out, nil
	}

	if !utf8.ValidString(input) {
		offset := invalidUTF8Offset([]byte(input))
		return nil, encodingErrorf(offset, "invalid UTF-8 input at byte %d", offset)
	}
	return []byte(input), nil
}

func formatBytes(data []byte, s Settings) string {
	digits := lowerDigits
	if s.Uppercase {
		digits = upperDigits
	}

	var b strings.Builder
	b.Grow(len(data)*(2+len(s.Prefix)) + (len(data)-1)*len(s.Delimiter))
	for i, c := range data {
		if i > 0 {
			b.WriteString(s.Delimiter)
		}
		b.WriteString(s.Prefix)
		b.WriteByte(digits[c>>4])
		b.WriteByte(digits[c&0x0f])
	}
	return b.String()
}
