// Package config reads compiler settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"blockc/gen"
	"blockc/trace"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one compiler run.
type Config struct {
	Indent  string `yaml:"indent"`   // one level of statement indentation
	OpenTag bool   `yaml:"open_tag"` // start the output with <?php
	Trace   Trace  `yaml:"trace"`
}

// Trace configures emission tracing.
type Trace struct {
	Enabled bool     `yaml:"enabled"`
	Filters []string `yaml:"filters"` // glob patterns on block kinds
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{Indent: "  ", OpenTag: true}
}

// Load reads a config file. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config YAML. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the YAML types cannot express.
func (c Config) Validate() error {
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("indent must be spaces or tabs, got %q", c.Indent)
	}
	for _, f := range c.Trace.Filters {
		if strings.TrimSpace(f) == "" {
			return errors.New("empty trace filter")
		}
	}
	return nil
}

// SetFilters replaces the trace filters with a comma separated list.
func (c *Config) SetFilters(list string) {
	c.Trace.Filters = nil
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			c.Trace.Filters = append(c.Trace.Filters, f)
		}
	}
}

// Tracer builds the tracer the settings ask for. It returns nil when
// tracing is off.
func (c Config) Tracer(w io.Writer) *trace.Tracer {
	if !c.Trace.Enabled {
		return nil
	}
	return trace.New(true, c.Trace.Filters, w)
}

// Options returns the generator options for these settings.
func (c Config) Options(w io.Writer) gen.Options {
	return gen.Options{Indent: c.Indent, Tracer: c.Tracer(w)}
}
