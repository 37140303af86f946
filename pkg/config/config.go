package config

import (
	"strings"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/ui"
)

// Config is the effective configuration of a run
type Config struct {
	Editor    EditorConfig    `koanf:"editor" toml:"editor"`
	Discovery DiscoveryConfig `koanf:"discovery" toml:"discovery"`
	Parser    ParserConfig    `koanf:"parser" toml:"parser"`
	Prune     PruneConfig     `koanf:"prune" toml:"prune"`
	Output    OutputConfig    `koanf:"output" toml:"output"`
}

type EditorConfig struct {
	Command string `koanf:"command" toml:"command"`
}

type DiscoveryConfig struct {
	MaxDepth int      `koanf:"max_depth" toml:"max_depth"`
	Exclude  []string `koanf:"exclude" toml:"exclude"`
}

type ParserConfig struct {
	DeleteTokens []string `koanf:"delete_tokens" toml:"delete_tokens"`
}

type PruneConfig struct {
	Enabled   bool `koanf:"enabled" toml:"enabled"`
	KeepRoots bool `koanf:"keep_roots" toml:"keep_roots"`
}

type OutputConfig struct {
	Color  string `koanf:"color" toml:"color"`
	Format string `koanf:"format" toml:"format"`
}

// ColorMode returns the parsed output.color value
func (c *Config) ColorMode() ui.ColorMode {
	mode, _ := ui.ParseColorMode(c.Output.Color)
	return mode
}

// Format returns the parsed output.format value
func (c *Config) Format() ui.Format {
	format, _ := ui.ParseFormat(c.Output.Format)
	return format
}

// Validate checks values the type system cannot
func (c *Config) Validate() error {
	if c.Discovery.MaxDepth < -1 {
		return errors.Newf(errors.ErrConfigParse, "discovery.max_depth must be -1 or greater, got %d", c.Discovery.MaxDepth).
			WithDetail("key", "discovery.max_depth")
	}
	if _, err := ui.ParseColorMode(c.Output.Color); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid output.color").
			WithDetail("key", "output.color")
	}
	if _, err := ui.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid output.format").
			WithDetail("key", "output.format")
	}
	if len(c.Parser.DeleteTokens) == 0 {
		return errors.New(errors.ErrConfigParse, "parser.delete_tokens must not be empty").
			WithDetail("key", "parser.delete_tokens")
	}
	for _, tok := range c.Parser.DeleteTokens {
		if tok == "" || strings.ContainsAny(tok, " \t") {
			return errors.Newf(errors.ErrConfigParse, "invalid delete token %q", tok).
				WithDetail("key", "parser.delete_tokens")
		}
	}
	return nil
}
