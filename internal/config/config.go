// Package config loads the golitec driver configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/you-not-fish/golite/internal/pipeline"
	"github.com/you-not-fish/golite/internal/sema"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "golite.toml"

// Config holds the complete driver configuration.
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Parser ParserConfig `toml:"parser"`
	Sema   SemaConfig   `toml:"sema"`
	Log    LogConfig    `toml:"log"`
	Repl   ReplConfig   `toml:"repl"`
}

// LexerConfig holds scanner settings.
type LexerConfig struct {
	ASI bool `toml:"asi"`
}

// ParserConfig holds parser settings.
type ParserConfig struct {
	MaxErrors            int  `toml:"max_errors"`
	AnalyzeOnSyntaxError bool `toml:"analyze_on_syntax_error"`
}

// SemaConfig holds semantic analyzer settings.
type SemaConfig struct {
	StrictImports   bool     `toml:"strict_imports"`
	BuiltinPackages []string `toml:"builtin_packages"`
}

// LogConfig holds report and logging settings.
type LogConfig struct {
	Dir    string `toml:"dir"`
	User   string `toml:"user"`
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// ReplConfig holds interactive prompt settings.
type ReplConfig struct {
	History   string `toml:"history"`
	CacheSize int    `toml:"cache_size"`
}

var (
	formats = []string{"text", "json", "yaml"}
	levels  = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Lexer:  LexerConfig{ASI: true},
		Parser: ParserConfig{MaxErrors: 25},
		Sema:   SemaConfig{BuiltinPackages: clone(sema.DefaultBuiltinPackages)},
		Log: LogConfig{
			Dir:    ".",
			User:   defaultUser(),
			Format: "text",
			Level:  "info",
		},
		Repl: ReplConfig{CacheSize: 128},
	}
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "golite"
}

// Load reads path on top of the defaults and validates the result.
// Keys that do not belong to any section are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Find loads path, or DefaultFile when path is empty and that file
// exists, or the defaults otherwise.
func Find(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", DefaultFile, err)
	}
	return Default(), nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Parser.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("parser.max_errors must be >= 0, got %d", c.Parser.MaxErrors))
	}
	if !validFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of %s, got %q",
			strings.Join(formats, "|"), c.Log.Format))
	}
	if _, ok := levels[c.Log.Level]; !ok {
		errs = append(errs, fmt.Errorf("log.level must be one of debug|info|warn|error, got %q", c.Log.Level))
	}
	if c.Log.User == "" {
		errs = append(errs, errors.New("log.user must not be empty"))
	}
	if c.Repl.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("repl.cache_size must be > 0, got %d", c.Repl.CacheSize))
	}
	for _, p := range c.Sema.BuiltinPackages {
		if p == "" {
			errs = append(errs, errors.New("sema.builtin_packages contains an empty name"))
			break
		}
	}
	return errors.Join(errs...)
}

func validFormat(f string) bool {
	for _, v := range formats {
		if f == v {
			return true
		}
	}
	return false
}

// SlogLevel returns the configured log level. Unknown names map to info.
func (c *Config) SlogLevel() slog.Level {
	if l, ok := levels[c.Log.Level]; ok {
		return l
	}
	return slog.LevelInfo
}

// PipelineOptions converts the configuration into pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		NoASI:                !c.Lexer.ASI,
		MaxSyntaxErrors:      c.Parser.MaxErrors,
		AnalyzeOnSyntaxError: c.Parser.AnalyzeOnSyntaxError,
		Sema: sema.Config{
			StrictImports:   c.Sema.StrictImports,
			BuiltinPackages: clone(c.Sema.BuiltinPackages),
		},
	}
}

// clone copies s, keeping an empty non-nil slice empty rather than nil.
func clone(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
