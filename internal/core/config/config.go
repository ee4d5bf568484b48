// Package config loads the TOML configuration file that drives the
// core's name-derivation and syntax-highlighting passes.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/grammarforge/internal/core/astmodel"
	"github.com/dekarrin/grammarforge/internal/core/textmate"
	"github.com/dekarrin/grammarforge/internal/core/words"
)

// NodeClassNaming controls the prefix/suffix concatenated around every
// class name the AST model builder generates.
type NodeClassNaming struct {
	Prefix string `toml:"prefix"`
	Suffix string `toml:"suffix"`
}

// AutomaticAbbreviationExpansion controls the abbreviation dictionary the
// name-normalization pipeline (internal/core/words) expands rule and
// label names against.
type AutomaticAbbreviationExpansion struct {
	// UseDefaultWordExpansions enables the built-in dictionary
	// (words.DefaultDictionary). Defaults to true if the key is absent;
	// set it to false explicitly to start from an empty dictionary.
	UseDefaultWordExpansions *bool `toml:"use_default_word_expansions"`

	// CustomWordExpansions maps a pipe-separated set of alternate
	// abbreviation patterns to the full word they expand to, e.g.
	// "stmt|stat" = "statement". Merged in after the defaults, so a
	// custom entry overrides a built-in one with the same pattern.
	CustomWordExpansions map[string]string `toml:"custom_word_expansions"`
}

// Ast is the Ast.* section of the Configuration surface.
type Ast struct {
	NodeClassNaming                NodeClassNaming                `toml:"node_class_naming"`
	AutomaticAbbreviationExpansion AutomaticAbbreviationExpansion `toml:"automatic_abbreviation_expansion"`
}

// RuleSetting is one entry of SyntaxHighlighting.RuleSettings: an override
// of the TextMate scope name the synthesizer would otherwise derive for a
// rule (or an implicit-literal token keyed by its quoted text).
type RuleSetting struct {
	TextMateScopeName string `toml:"text_mate_scope_name"`
}

// ConflictGroup is one entry of SyntaxHighlighting.RuleConflicts: an
// ordered group of rules whose longest-match priority must be declared
// explicitly rather than left to automatic literal-prefix detection.
type ConflictGroup struct {
	Rules []string `toml:"rules"`
}

// SyntaxHighlighting is the SyntaxHighlighting.* section of the
// Configuration surface.
type SyntaxHighlighting struct {
	RuleSettings  map[string]RuleSetting `toml:"rule_settings"`
	RuleConflicts []ConflictGroup        `toml:"rule_conflicts"`
}

// Config is the root of the configuration file: everything that can be
// set in a .toml config file to steer the core's name derivation and
// syntax-highlighting passes.
type Config struct {
	Ast                Ast                `toml:"ast"`
	SyntaxHighlighting SyntaxHighlighting `toml:"syntax_highlighting"`
}

// Load reads and parses the .toml config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// useDefaults reports whether the built-in abbreviation dictionary should
// seed the Dictionary this Config builds, defaulting to true when unset.
func (c Config) useDefaults() bool {
	u := c.Ast.AutomaticAbbreviationExpansion.UseDefaultWordExpansions
	return u == nil || *u
}

// Dictionary builds the words.Dictionary this Config describes: the
// built-in table (unless disabled) with CustomWordExpansions merged in
// after, so custom entries win on conflict.
func (c Config) Dictionary() *words.Dictionary {
	var d *words.Dictionary
	if c.useDefaults() {
		d = words.DefaultDictionary()
	} else {
		d = words.NewDictionary()
	}
	d.AddFromConfig(c.Ast.AutomaticAbbreviationExpansion.CustomWordExpansions)
	return d
}

// AstModelOptions builds the astmodel.Options this Config describes, for
// direct use constructing an astmodel.Builder.
func (c Config) AstModelOptions() astmodel.Options {
	return astmodel.Options{
		Dictionary: c.Dictionary(),
		NamePrefix: c.Ast.NodeClassNaming.Prefix,
		NameSuffix: c.Ast.NodeClassNaming.Suffix,
	}
}

// TextMateOptions builds the textmate.Options this Config describes for
// the given target language name, for direct use with textmate.Synthesize.
func (c Config) TextMateOptions(language string) textmate.Options {
	opts := textmate.Options{
		Language:     language,
		RuleSettings: make(map[string]textmate.RuleSetting, len(c.SyntaxHighlighting.RuleSettings)),
	}
	for name, s := range c.SyntaxHighlighting.RuleSettings {
		opts.RuleSettings[name] = textmate.RuleSetting{TextMateScopeName: s.TextMateScopeName}
	}
	for _, g := range c.SyntaxHighlighting.RuleConflicts {
		opts.RuleConflicts = append(opts.RuleConflicts, textmate.ConflictGroup{Rules: g.Rules})
	}
	return opts
}
