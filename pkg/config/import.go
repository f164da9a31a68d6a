package config

import (
	"fmt"

	"github.com/magiconair/properties"
)

// Import reads a .properties file using the same keys as Set, applies every key
// it finds and writes the config. Nothing is written if any value is invalid.
// Leading whitespace in values is dropped by the format; escape it (`delimiter=\u0020`).
func (c *Config) Import(path string) ([]string, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	p.DisableExpansion = true

	old := c.snapshot()
	var applied []string
	for _, key := range Keys {
		value, ok := p.Get(key)
		if !ok {
			continue
		}
		if err := c.Set(key, value); err != nil {
			c.restore(old)
			return nil, fmt.Errorf("import %s: %w", key, err)
		}
		applied = append(applied, key)
	}

	if len(applied) == 0 {
		return nil, fmt.Errorf("no known keys in %s: expected any of %v", path, Keys)
	}
	if err := c.Write(); err != nil {
		c.restore(old)
		return nil, err
	}
	return applied, nil
}
