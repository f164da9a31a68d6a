package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/birdayz/hexer/pkg/app"
)

// newConfig creates an empty config file and returns its path.
func newConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	return path
}

func runCmd(t *testing.T, in io.Reader, args ...string) string {
	out, err := runCmdAllowFail(t, in, args...)
	if err != nil {
		t.Logf("Command failed: %v\nArgs: %v\nOutput: %s", err, args, out)
		t.FailNow()
	}
	return out
}

func runCmdAllowFail(t *testing.T, in io.Reader, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	if in == nil {
		in = strings.NewReader("")
	}

	b := bytes.NewBufferString("")

	root := NewRootCommand(app.New(), "test", "HEAD")
	root.SetArgs(args)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(in)

	err := root.ExecuteContext(ctx)
	return b.String(), err
}

func TestEncode(t *testing.T) {
	cfg := newConfig(t)

	t.Run("Defaults", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "encode", "hello")
		assert.Equal(t, "68 65 6C 6C 6F\n", out)
	})

	t.Run("Flags", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "encode", "-p", "0x", "-d", ", ", "--uppercase=false", "hi")
		assert.Equal(t, "0x68, 0x69\n", out)
	})

	t.Run("EscapedDelimiter", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "encode", "-d", `\t`, "AB")
		assert.Equal(t, "41\t42\n", out)
	})

	t.Run("Stdin", func(t *testing.T) {
		out := runCmd(t, strings.NewReader("A\nB\n"), "--config", cfg, "encode")
		assert.Equal(t, "41\n42\n", out)
	})

	t.Run("ASCIIRejectsNonASCII", func(t *testing.T) {
		out, err := runCmdAllowFail(t, nil, "--config", cfg, "encode", "--encoding", "ascii", "héllo")
		require.Error(t, err)
		assert.Contains(t, out, "is not ASCII")
	})

	t.Run("InvalidDelimiter", func(t *testing.T) {
		_, err := runCmdAllowFail(t, nil, "--config", cfg, "encode", "-d", "a", "hi")
		require.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	cfg := newConfig(t)

	t.Run("Defaults", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "decode", "68", "65", "6c", "6C", "6f")
		assert.Equal(t, "hello\n", out)
	})

	t.Run("OptionalPrefix", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "decode", "-p", "0x", "0x68 69")
		assert.Equal(t, "hi\n", out)
	})

	t.Run("Malformed", func(t *testing.T) {
		out, err := runCmdAllowFail(t, nil, "--config", cfg, "decode", "6")
		require.Error(t, err)
		assert.Contains(t, out, "odd number of hex digits")
	})

	t.Run("Raw", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "-o", "raw", "decode", "41")
		assert.Equal(t, "A", out)
	})

	t.Run("JSON", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "-o", "json", "decode", "68 69")
		var r app.Result
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		assert.Equal(t, "hi", r.Output)
		assert.Equal(t, "68 69", r.Input)
	})

	t.Run("Msgpack", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "decode", "--msgpack", "81 a4 6e 61 6d 65 a5 68 65 78 65 72")
		assert.JSONEq(t, `{"name":"hexer"}`, out)
	})
}

func TestConvert(t *testing.T) {
	cfg := newConfig(t)

	out := runCmd(t, nil, "--config", cfg, "convert", "--mode", "decode", "41")
	assert.Equal(t, "A\n", out)

	out = runCmd(t, nil, "--config", cfg, "convert", "A")
	assert.Equal(t, "41\n", out, "defaults to text-to-hex")

	runCmd(t, nil, "--config", cfg, "config", "set", "mode", "hex-to-text")
	out = runCmd(t, nil, "--config", cfg, "convert", "41")
	assert.Equal(t, "A\n", out, "uses the stored mode")

	out = runCmd(t, nil, "--config", cfg, "--template", "{{ .Mode }}: {{ .Output }}", "convert", "42")
	assert.Equal(t, "hex-to-text: B\n", out)
}

func TestCheck(t *testing.T) {
	cfg := newConfig(t)

	out := runCmd(t, strings.NewReader("41 42\nzz\n"), "--config", cfg, "check")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "HEX-LIKE")
	assert.True(t, strings.HasPrefix(lines[1], "true"))
	assert.True(t, strings.HasPrefix(lines[2], "false"))

	_, err := runCmdAllowFail(t, nil, "--config", cfg, "check", "--strict", "zz")
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	cfg := newConfig(t)

	t.Run("Help", func(t *testing.T) {
		out := runCmd(t, nil, "config", "--help")
		assert.Contains(t, out, "Handle hexer configuration")
		assert.Contains(t, out, "set-theme")
		assert.Contains(t, out, "import")
	})

	t.Run("SetAndShow", func(t *testing.T) {
		runCmd(t, nil, "--config", cfg, "config", "set", "prefix", "0x")
		runCmd(t, nil, "--config", cfg, "config", "set", "delimiter", `\t`)
		runCmd(t, nil, "--config", cfg, "config", "set-theme", "light")

		out := runCmd(t, nil, "--config", cfg, "config", "show")
		assert.Contains(t, out, `"0x"`)
		assert.Contains(t, out, `"\t"`)
		assert.Contains(t, out, "light")

		out = runCmd(t, nil, "--config", cfg, "encode", "hi")
		assert.Equal(t, "0x68\t0x69\n", out)

		out = runCmd(t, nil, "--config", cfg, "encode", "-d", " ", "hi")
		assert.Equal(t, "0x68 0x69\n", out, "flags override the stored settings")

		data, err := os.ReadFile(cfg)
		require.NoError(t, err)
		var stored map[string]any
		require.NoError(t, yaml.Unmarshal(data, &stored))
		assert.Equal(t, "light", stored["theme"])
	})

	t.Run("SetRejectsInvalid", func(t *testing.T) {
		_, err := runCmdAllowFail(t, nil, "--config", cfg, "config", "set-theme", "neon")
		require.Error(t, err)

		_, err = runCmdAllowFail(t, nil, "--config", cfg, "config", "set", "colour", "red")
		require.Error(t, err)

		out, err := runCmdAllowFail(t, nil, "--config", cfg, "config", "set", "prefix", `x\t`)
		require.Error(t, err)
		assert.Contains(t, out, "whitespace")

		out, err = runCmdAllowFail(t, nil, "--config", cfg, "encode", "-d", "-", "-p", "x-", "AB")
		require.Error(t, err)
		assert.Contains(t, out, "contains delimiter")
	})

	t.Run("Language", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "config", "set-language", "de")
		assert.Contains(t, out, "Sprache")
	})

	t.Run("Import", func(t *testing.T) {
		props := filepath.Join(t.TempDir(), "hexer.properties")
		require.NoError(t, os.WriteFile(props, []byte("prefix=\ndelimiter=-\nuppercase=false\n"), 0600))

		out := runCmd(t, nil, "--config", cfg, "config", "import", props)
		assert.Contains(t, out, "Imported")

		out = runCmd(t, nil, "--config", cfg, "encode", "hi")
		assert.Equal(t, "68-69\n", out)
	})

	t.Run("Path", func(t *testing.T) {
		out := runCmd(t, nil, "--config", cfg, "config", "path")
		assert.Equal(t, cfg+"\n", out)
	})
}

func TestShell(t *testing.T) {
	t.Run("ManualRecordsHistory", func(t *testing.T) {
		cfg := newConfig(t)
		in := strings.NewReader("hi\n:mode hex-to-text\n41 42\n:history\n:quit\nignored\n")

		out := runCmd(t, in, "--config", cfg, "shell")
		assert.Contains(t, out, "Output: 68 69")
		assert.Contains(t, out, "Mode: hex-to-text")
		assert.Contains(t, out, "Output: AB")
		assert.Contains(t, out, "MODE")
		assert.Contains(t, out, "Bye.")
		assert.NotContains(t, out, "ignored")
	})

	t.Run("LiveModeDoesNotRecord", func(t *testing.T) {
		cfg := newConfig(t)
		in := strings.NewReader(":live on\nab\n:history\n:convert\n:history\n")

		out := runCmd(t, in, "--config", cfg, "shell")
		assert.Contains(t, out, "Live mode: true")
		assert.Contains(t, out, "Output: 61 62")
		assert.Contains(t, out, "No conversions yet.")
		assert.Contains(t, out, "#")
	})

	t.Run("SwapAndRecall", func(t *testing.T) {
		cfg := newConfig(t)
		in := strings.NewReader("a\nb\n:swap\n:convert\n:recall 3\n:recall 9\n")

		out := runCmd(t, in, "--config", cfg, "shell")
		assert.Contains(t, out, "Output: 62")
		assert.Contains(t, out, "Output: b")
		assert.Contains(t, out, "> a")
		assert.Contains(t, out, `No history entry "9".`)
	})

	t.Run("Errors", func(t *testing.T) {
		cfg := newConfig(t)
		in := strings.NewReader(":mode decode\nzz\n:delimiter a\n:bogus\n")

		out := runCmd(t, in, "--config", cfg, "shell")
		assert.Contains(t, out, "MalformedHexError")
		assert.Contains(t, out, "delimiter")
		assert.Contains(t, out, `Unknown command ":bogus"`)
	})

	t.Run("SettingsAndSave", func(t *testing.T) {
		cfg := newConfig(t)
		in := strings.NewReader(":prefix 0x\n:delimiter , \n:uppercase off\n:mode decode\n:save\n")
		runCmd(t, in, "--config", cfg, "shell")

		out := runCmd(t, nil, "--config", cfg, "config", "show")
		assert.Contains(t, out, `"0x"`)
		assert.Contains(t, out, `", "`)
		assert.Contains(t, out, "hex-to-text")

		out = runCmd(t, nil, "--config", cfg, "convert", "0x68, 0x69")
		assert.Equal(t, "hi\n", out)
	})

	t.Run("Language", func(t *testing.T) {
		cfg := newConfig(t)
		in := strings.NewReader(":lang es\nhi\n:theme plain\n")

		out := runCmd(t, in, "--config", cfg, "shell")
		assert.Contains(t, out, "Salida: 68 69")
		assert.Contains(t, out, "Tema cambiado")
	})
}

func TestCompletionCommand(t *testing.T) {
	out := runCmd(t, nil, "completion", "bash")
	assert.Contains(t, out, "hexer")

	_, err := runCmdAllowFail(t, nil, "completion", "tcsh")
	require.Error(t, err)
}
