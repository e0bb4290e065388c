// Package config loads the YAML document describing a module's
// defaulting/extension/REPL behavior, grounded on the teacher's
// internal/eval_harness/spec.go LoadSpec pattern (read file, yaml.Unmarshal,
// validate required fields). Consumed only by cmd/corec — internal/elaborate
// takes no Config at all, keeping the core interface free of any notion of
// on-disk configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the module-level configuration document.
type Config struct {
	// Module is the module name this configuration applies to; required.
	Module string `yaml:"module"`

	// Defaults names numeric-defaulting candidate types for a module with
	// no source-level `default (...)` declaration. It is loaded but not
	// applied: no subcommand passes it to the class environment, whose own
	// fallback list is [Int, Double].
	Defaults []string `yaml:"defaults"`

	// Extensions records language-extension flags (e.g. "GADTs",
	// "TypeFamilies"). It is loaded but not read by any subcommand.
	Extensions map[string]bool `yaml:"extensions"`

	// REPL holds interactive-session settings for the `repl` subcommand.
	REPL REPLConfig `yaml:"repl"`
}

// REPLConfig configures cmd/corec's repl subcommand, which reads only
// HistoryFile; ShowTypes and ShowDictionaries are loaded but not read.
type REPLConfig struct {
	HistoryFile    string `yaml:"history_file"`
	ShowTypes      bool   `yaml:"show_types"`
	ShowDictionaries bool `yaml:"show_dictionaries"`
}

// Default returns the Config that Load starts from before applying the
// document.
func Default() *Config {
	return &Config{
		Defaults:   []string{"Integer", "Double"},
		Extensions: map[string]bool{},
		REPL: REPLConfig{
			HistoryFile: ".corec_history",
		},
	}
}

// Load reads and validates the YAML configuration document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.Module == "" {
		return nil, fmt.Errorf("config: %s: missing required field %q", path, "module")
	}
	return cfg, nil
}
