package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of emitted YAML.
const yamlIndent = 2

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration after a comment header.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// FromYAML parses a configuration. Unknown keys are rejected so typos
// surface instead of being ignored.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.Parser.Callouts != nil {
		clone.Parser.Callouts = Bool(*c.Parser.Callouts)
	}
	if c.Parser.FrontMatter != nil {
		clone.Parser.FrontMatter = Bool(*c.Parser.FrontMatter)
	}
	return &clone
}
