package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birdayz/hexer/pkg/hexcodec"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadConfig_YAML(t *testing.T) {
	path := writeFile(t, "config", `theme: light
language: es
mode: hex-to-text
settings:
  delimiter: ", "
  prefix: 0x
  uppercase: true
  encoding: ASCII
  live-mode: true
`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "light", cfg.ActiveTheme())
	require.Equal(t, "es", cfg.ActiveLanguage())
	require.Equal(t, hexcodec.ModeHexToText, cfg.ActiveMode())
	require.Equal(t, path, cfg.Path())

	s := cfg.ConverterSettings()
	require.Equal(t, ", ", s.Delimiter)
	require.Equal(t, "0x", s.Prefix)
	require.True(t, s.Uppercase)
	require.Equal(t, hexcodec.EncodingASCII, s.Encoding)
	require.True(t, s.LiveMode)
}

func TestReadConfig_Defaults(t *testing.T) {
	path := writeFile(t, "config", "")

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ThemeDark, cfg.ActiveTheme())
	require.Equal(t, "en", cfg.ActiveLanguage())
	require.Equal(t, hexcodec.ModeTextToHex, cfg.ActiveMode())
	require.Equal(t, hexcodec.DefaultSettings(), cfg.ConverterSettings())
}

func TestReadConfig_MissingSettingsFieldsAreEmpty(t *testing.T) {
	path := writeFile(t, "config", "settings:\n  prefix: '#'\n")

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	s := cfg.ConverterSettings()
	require.Equal(t, "", s.Delimiter)
	require.Equal(t, "#", s.Prefix)

	n, err := s.Normalize()
	require.NoError(t, err)
	require.Equal(t, hexcodec.EncodingUTF8, n.Encoding)
}

func TestReadConfig_Invalid(t *testing.T) {
	_, err := ReadConfig(writeFile(t, "config", "theme: neon\n"))
	require.ErrorContains(t, err, "unknown theme")

	_, err = ReadConfig(writeFile(t, "config", "settings:\n  encoding: latin1\n"))
	require.ErrorContains(t, err, "unsupported encoding")

	_, err = ReadConfig(writeFile(t, "config", "theme: [\n"))
	require.ErrorContains(t, err, "decode config")
}

func TestReadConfig_ExplicitPathMustExist(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nonexistent"))
	require.Error(t, err)
}

func TestWriteAndReadBack(t *testing.T) {
	path := writeFile(t, "config", "")
	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Update("theme", "Plain"))
	require.NoError(t, cfg.Update("language", "de-DE"))
	require.NoError(t, cfg.Update("delimiter", ":"))
	require.NoError(t, cfg.Update("prefix", `\x`))
	require.NoError(t, cfg.Update("encoding", "ascii"))
	require.NoError(t, cfg.Update("live-mode", "true"))
	require.NoError(t, cfg.Update("mode", "decode"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reread, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "plain", reread.Theme)
	require.Equal(t, "de-DE", reread.Language)
	require.Equal(t, "hex-to-text", reread.Mode)
	require.Equal(t, hexcodec.Settings{
		Delimiter: ":",
		Prefix:    `\x`,
		Uppercase: true,
		Encoding:  hexcodec.EncodingASCII,
		LiveMode:  true,
	}, reread.ConverterSettings())
}

func TestSet_Invalid(t *testing.T) {
	cfg := Config{}

	require.Error(t, cfg.Set("theme", "neon"))
	require.Error(t, cfg.Set("language", "not a tag!"))
	require.Error(t, cfg.Set("mode", "sideways"))
	require.Error(t, cfg.Set("uppercase", "maybe"))
	require.Error(t, cfg.Set("encoding", "ebcdic"))
	require.Error(t, cfg.Set("delimiter", "0"))
	require.ErrorContains(t, cfg.Set("colour", "red"), "unknown key")

	require.Nil(t, cfg.Settings)
	require.Empty(t, cfg.Theme)
}

func TestUpdate_InvalidLeavesConfigUntouched(t *testing.T) {
	path := writeFile(t, "config", "theme: light\n")
	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	require.Error(t, cfg.Update("theme", "neon"))
	require.Equal(t, "light", cfg.Theme)
}

func TestImport(t *testing.T) {
	cfgPath := writeFile(t, "config", "")
	propsPath := writeFile(t, "hexer.properties", `# exported settings
theme = light
delimiter = \u0020
prefix = 0x
uppercase = false
encoding = UTF-8
unrelated = ignored
`)

	cfg, err := ReadConfig(cfgPath)
	require.NoError(t, err)

	applied, err := cfg.Import(propsPath)
	require.NoError(t, err)
	require.Equal(t, []string{"theme", "delimiter", "prefix", "uppercase", "encoding"}, applied)

	reread, err := ReadConfig(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "light", reread.ActiveTheme())
	s := reread.ConverterSettings()
	require.Equal(t, " ", s.Delimiter)
	require.Equal(t, "0x", s.Prefix)
	require.False(t, s.Uppercase)
}

func TestImport_InvalidValueRollsBack(t *testing.T) {
	cfgPath := writeFile(t, "config", "theme: dark\n")
	propsPath := writeFile(t, "bad.properties", "theme=light\nencoding=latin1\n")

	cfg, err := ReadConfig(cfgPath)
	require.NoError(t, err)

	_, err = cfg.Import(propsPath)
	require.ErrorContains(t, err, "import encoding")
	require.Equal(t, "dark", cfg.Theme)
}

func TestImport_NoKnownKeys(t *testing.T) {
	cfg := Config{}
	_, err := cfg.Import(writeFile(t, "empty.properties", "foo=bar\n"))
	require.ErrorContains(t, err, "no known keys")
}
