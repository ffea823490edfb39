//
// Tencent is pleased to support the open source community by making trpc-mteval-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-mteval-go is licensed under the Apache License Version 2.0.
//
//

package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"trpc.group/trpc-go/trpc-mteval-go/log"
	"trpc.group/trpc-go/trpc-mteval-go/nist"
	"trpc.group/trpc-go/trpc-mteval-go/report"
	"trpc.group/trpc-go/trpc-mteval-go/tokenizer"
)

// Report backends.
const (
	backendNone  = "none"
	backendLocal = "local"
	backendMySQL = "mysql"
)

// Config is the CLI configuration. It is read from YAML and then
// overridden by explicitly set flags.
type Config struct {
	// Corpus is a JSON or YAML corpus file.
	Corpus string `yaml:"corpus"`
	// Hyp is a plain text hypothesis file, one segment per line.
	Hyp string `yaml:"hyp"`
	// Refs are reference files or doublestar patterns aligned with Hyp.
	Refs []string `yaml:"refs"`
	// Name labels the run in reports. Defaults to the corpus name.
	Name        string          `yaml:"name"`
	MaxOrder    int             `yaml:"maxOrder"`
	Parallelism int             `yaml:"parallelism"`
	Tokenizer   TokenizerConfig `yaml:"tokenizer"`
	Log         LogConfig       `yaml:"log"`
	Report      ReportConfig    `yaml:"report"`
}

// TokenizerConfig selects and tunes the tokenizer.
type TokenizerConfig struct {
	Kind      string `yaml:"kind"`
	Lowercase bool   `yaml:"lowercase"`
	NFKC      bool   `yaml:"nfkc"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig selects where the score report is saved.
type ReportConfig struct {
	Backend     string `yaml:"backend"`
	Dir         string `yaml:"dir"`
	DSN         string `yaml:"dsn"`
	TablePrefix string `yaml:"tablePrefix"`
}

func defaultConfig() Config {
	return Config{
		MaxOrder:    nist.DefaultMaxOrder,
		Parallelism: 1,
		Tokenizer:   TokenizerConfig{Kind: tokenizer.KindMTEval},
		Log:         LogConfig{Level: log.LevelInfo, Format: log.FormatConsole},
		Report:      ReportConfig{Backend: backendNone, Dir: report.DefaultBaseDir},
	}
}

// loadConfig reads path on top of the defaults. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}
	switch {
	case c.Corpus == "" && c.Hyp == "":
		add("either corpus or hyp is required")
	case c.Corpus != "" && c.Hyp != "":
		add("corpus and hyp are mutually exclusive")
	case c.Hyp != "" && len(c.Refs) == 0:
		add("hyp requires at least one ref")
	case c.Corpus != "" && len(c.Refs) > 0:
		add("refs are only used with hyp")
	}
	if c.MaxOrder < 1 {
		add("maxOrder must be at least 1, got %d", c.MaxOrder)
	}
	if c.Parallelism < 1 {
		add("parallelism must be at least 1, got %d", c.Parallelism)
	}
	switch c.Tokenizer.Kind {
	case tokenizer.KindWhitespace, tokenizer.KindMTEval:
	default:
		add("unknown tokenizer %q", c.Tokenizer.Kind)
	}
	switch c.Log.Level {
	case log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError, log.LevelFatal:
	default:
		add("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case log.FormatConsole, log.FormatJSON:
	default:
		add("unknown log format %q", c.Log.Format)
	}
	switch c.Report.Backend {
	case backendNone:
	case backendLocal:
		if c.Report.Dir == "" {
			add("report dir is required for the local backend")
		}
	case backendMySQL:
		if c.Report.DSN == "" {
			add("report dsn is required for the mysql backend")
		}
	default:
		add("unknown report backend %q", c.Report.Backend)
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
