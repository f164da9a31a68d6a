package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/birdayz/hexer/pkg/encoding"
	"github.com/birdayz/hexer/pkg/hexcodec"
)

// Transform converts a single input with codec.
type Transform func(codec encoding.Codec, input string) (string, error)

// ConvertTransform encodes or decodes depending on mode.
func ConvertTransform(mode hexcodec.Mode) Transform {
	return func(codec encoding.Codec, input string) (string, error) {
		var (
			out []byte
			err error
		)
		switch mode {
		case hexcodec.ModeTextToHex:
			out, err = codec.Encode([]byte(input))
		case hexcodec.ModeHexToText:
			out, err = codec.Decode([]byte(input))
		default:
			return "", fmt.Errorf("unknown mode %q", mode)
		}
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// MsgpackTransform decodes hex into bytes and renders them as a MessagePack
// document in JSON. codec must return raw bytes, see NewCodec.
func MsgpackTransform(codec encoding.Codec, input string) (string, error) {
	data, err := codec.Decode([]byte(input))
	if err != nil {
		return "", err
	}

	var obj any
	if err := msgpack.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("could not decode msgpack data: %w", err)
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("could not encode msgpack data as JSON: %w", err)
	}
	return string(out), nil
}

// NewCodec returns a codec for the effective settings. A binary codec skips the
// text encoding step and works on raw bytes.
func (a *App) NewCodec(binary bool) (encoding.Codec, error) {
	if binary {
		c, err := hexcodec.NewBinaryCodec(a.settings)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	c, err := hexcodec.NewCodec(a.settings)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ReadInputs returns the arguments joined by spaces. Without arguments stdin is
// read, one input per line or as a whole depending on mode.
func (a *App) ReadInputs(args []string, mode InputMode) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	if mode == InputModeFull {
		data, err := io.ReadAll(a.InReader)
		if err != nil {
			return nil, fmt.Errorf("unable to read data: %w", err)
		}
		return []string{string(data)}, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(a.InReader)
	for scanner.Scan() {
		inputs = append(inputs, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning input failed: %w", err)
	}
	return inputs, nil
}

// RunConversions converts and prints every input. A single failing input is
// returned as is; with several inputs each failure is reported on ErrWriter and
// a summary error is returned at the end.
func (a *App) RunConversions(mode hexcodec.Mode, inputs []string, codec encoding.Codec, fn Transform) error {
	failed := 0

	for i, input := range inputs {
		r := Result{Mode: mode, Input: input}
		out, err := fn(codec, input)
		if err == nil {
			r.Output = out
			if err := a.Render(r); err != nil {
				return err
			}
			continue
		}

		failed++
		r.Error = err.Error()
		r.ErrorKind = hexcodec.KindOf(err).String()
		a.Log.WithFields(logrus.Fields{
			"mode":  mode,
			"input": i + 1,
			"kind":  r.ErrorKind,
		}).Debug("conversion failed")

		switch {
		case a.Output == OutputFormatJSON:
			if err := a.Render(r); err != nil {
				return err
			}
		case len(inputs) == 1:
			return err
		default:
			fmt.Fprintf(a.ErrWriter, "input %d: %v\n", i+1, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to convert", failed, len(inputs))
	}
	return nil
}
