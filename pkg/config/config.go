package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"

	"github.com/birdayz/hexer/pkg/hexcodec"
)

// Themes supported by the renderer.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemePlain = "plain"
)

var Themes = []string{ThemeDark, ThemeLight, ThemePlain}

// Keys accepted by Set and Import.
var Keys = []string{"theme", "language", "mode", "delimiter", "prefix", "uppercase", "encoding", "live-mode"}

type Settings struct {
	Delimiter string `yaml:"delimiter"`
	Prefix    string `yaml:"prefix"`
	Uppercase bool   `yaml:"uppercase"`
	Encoding  string `yaml:"encoding"`
	LiveMode  bool   `yaml:"live-mode"`
}

type Config struct {
	Theme    string    `yaml:"theme,omitempty"`
	Language string    `yaml:"language,omitempty"`
	Mode     string    `yaml:"mode,omitempty"`
	Settings *Settings `yaml:"settings,omitempty"`
	// configPath is the file path used for reading and writing this config.
	configPath string `yaml:"-"`
}

// Path returns the file this config is read from and written to.
func (c *Config) Path() string {
	return c.configPath
}

// ConverterSettings returns the stored settings, or the defaults if none are stored.
func (c *Config) ConverterSettings() hexcodec.Settings {
	if c == nil || c.Settings == nil {
		return hexcodec.DefaultSettings()
	}
	return hexcodec.Settings{
		Delimiter: c.Settings.Delimiter,
		Prefix:    c.Settings.Prefix,
		Uppercase: c.Settings.Uppercase,
		Encoding:  hexcodec.Encoding(c.Settings.Encoding),
		LiveMode:  c.Settings.LiveMode,
	}
}

func (c *Config) SetConverterSettings(s hexcodec.Settings) {
	c.Settings = &Settings{
		Delimiter: s.Delimiter,
		Prefix:    s.Prefix,
		Uppercase: s.Uppercase,
		Encoding:  string(s.Encoding),
		LiveMode:  s.LiveMode,
	}
}

// ActiveMode returns the stored mode, defaulting to text-to-hex.
func (c *Config) ActiveMode() hexcodec.Mode {
	if c == nil {
		return hexcodec.ModeTextToHex
	}
	m, err := hexcodec.ParseMode(c.Mode)
	if err != nil {
		return hexcodec.ModeTextToHex
	}
	return m
}

func (c *Config) ActiveTheme() string {
	if c == nil || c.Theme == "" {
		return ThemeDark
	}
	return c.Theme
}

func (c *Config) ActiveLanguage() string {
	if c == nil || c.Language == "" {
		return "en"
	}
	return c.Language
}

// Set validates value and stores it under key. It does not write the file.
func (c *Config) Set(key, value string) error {
	switch key {
	case "theme":
		theme, err := ParseTheme(value)
		if err != nil {
			return err
		}
		c.Theme = theme
		return nil
	case "language":
		tag, err := language.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid language %q: %w", value, err)
		}
		c.Language = tag.String()
		return nil
	case "mode":
		m, err := hexcodec.ParseMode(value)
		if err != nil {
			return err
		}
		c.Mode = string(m)
		return nil
	}

	s := c.ConverterSettings()
	switch key {
	case "delimiter":
		s.Delimiter = value
	case "prefix":
		s.Prefix = value
	case "uppercase":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for uppercase: %w", value, err)
		}
		s.Uppercase = b
	case "encoding":
		enc, err := hexcodec.ParseEncoding(value)
		if err != nil {
			return err
		}
		s.Encoding = enc
	case "live-mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for live-mode: %w", value, err)
		}
		s.LiveMode = b
	default:
		return fmt.Errorf("unknown key %q: must be one of: %s", key, strings.Join(Keys, ", "))
	}

	normalized, err := s.Normalize()
	if err != nil {
		return err
	}
	c.SetConverterSettings(normalized)
	return nil
}

// Update applies key=value and writes the config. On a failed write the previous
// state is restored, so either everything succeeds or nothing changes.
func (c *Config) Update(key, value string) error {
	old := c.snapshot()
	if err := c.Set(key, value); err != nil {
		return err
	}
	if err := c.Write(); err != nil {
		c.restore(old)
		return err
	}
	return nil
}

func (c *Config) snapshot() Config {
	cp := *c
	if c.Settings != nil {
		s := *c.Settings
		cp.Settings = &s
	}
	return cp
}

func (c *Config) restore(old Config) {
	c.Theme = old.Theme
	c.Language = old.Language
	c.Mode = old.Mode
	c.Settings = old.Settings
}

// ParseTheme validates a theme name.
func ParseTheme(s string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Themes {
		if name == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q: must be one of: %s", s, strings.Join(Themes, ", "))
}

func (c *Config) Write() error {
	configPath := c.configPath
	if configPath == "" {
		var err error
		configPath, err = getDefaultConfigPath()
		if err != nil {
			return err
		}
	}
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(configDir, "config.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()

	encoder := yaml.NewEncoder(tmpFile)
	if err := encoder.Encode(c); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flush config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp config file: %w", err)
	}
	c.configPath = configPath
	return nil
}

func ReadConfig(cfgPath string) (c Config, err error) {
	resolvedPath, err := resolveConfigPath(cfgPath)
	if err != nil {
		return Config{}, err
	}

	file, err := os.OpenFile(resolvedPath, os.O_RDONLY, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{configPath: resolvedPath}, nil
		}
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.configPath = resolvedPath

	if c.Theme != "" {
		if _, err := ParseTheme(c.Theme); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	if _, err := c.ConverterSettings().Normalize(); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func resolveConfigPath(cfgPath string) (string, error) {
	if cfgPath == "" {
		return getDefaultConfigPath()
	}
	expanded, err := homedir.Expand(cfgPath)
	if err != nil {
		return "", fmt.Errorf("expand config path: %w", err)
	}
	if !fileExists(expanded) {
		return "", fmt.Errorf("config file %q does not exist", cfgPath)
	}
	return expanded, nil
}

func getDefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	return filepath.Join(home, ".hexer", "config"), nil
}
