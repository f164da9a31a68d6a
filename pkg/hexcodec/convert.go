package hexcodec

import (
	"fmt"

	"github.com/birdayz/hexer/pkg/encoding"
)

var (
	_ encoding.Codec = (*Codec)(nil)
	_ encoding.Codec = (*BinaryCodec)(nil)
)

// Convert runs the transform selected by mode.
func Convert(mode Mode, input string, settings Settings) (string, error) {
	switch mode {
	case ModeTextToHex:
		return Encode(input, settings)
	case ModeHexToText:
		return Decode(input, settings)
	default:
		return "", settingsErrorf("unknown mode %q", mode)
	}
}

// IsHexLike reports whether input is non-blank and structurally valid hex under
// settings. It does not check that the bytes form valid text.
func IsHexLike(input string, settings Settings) bool {
	data, err := DecodeBytes(input, settings)
	return err == nil && len(data) > 0
}

// Codec binds Settings to the byte-oriented encoding interfaces.
type Codec struct {
	Settings Settings
}

// NewCodec validates settings up front so later calls only fail on input.
func NewCodec(settings Settings) (*Codec, error) {
	s, err := settings.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid codec settings: %w", err)
	}
	return &Codec{Settings: s}, nil
}

// Encode turns text into its hex representation.
func (c *Codec) Encode(in []byte) ([]byte, error) {
	out, err := Encode(string(in), c.Settings)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Decode turns hex back into text.
func (c *Codec) Decode(in []byte) ([]byte, error) {
	out, err := Decode(string(in), c.Settings)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// BinaryCodec converts between raw bytes and hex without the text encoding step.
type BinaryCodec struct {
	Settings Settings
}

func NewBinaryCodec(settings Settings) (*BinaryCodec, error) {
	s, err := settings.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid codec settings: %w", err)
	}
	return &BinaryCodec{Settings: s}, nil
}

// Encode renders arbitrary bytes as hex.
func (c *BinaryCodec) Encode(in []byte) ([]byte, error) {
	if len(in) == 0 {
		return []byte{}, nil
	}
	return []byte(formatBytes(in, c.Settings)), nil
}

// Decode returns the bytes written as hex in in.
func (c *BinaryCodec) Decode(in []byte) ([]byte, error) {
	return decodeBytes(string(in), c.Settings)
}
