// Package config loads and merges linter rule configuration.
//
// Configuration comes from an ordered list of sources: the bundled defaults,
// then project files such as lqlint.json, then files given explicitly. Each
// source maps rule names to settings; sources are merged field by field in
// order, so a later source overrides only what it sets.
package config

import (
	"fmt"
	"sort"

	"github.com/nsxbet/changelog-linter/pkg/pattern"
)

// Config is the effective configuration of one lint run. It is immutable.
type Config struct {
	rules                map[string][]*RuleConfig
	ignoreContextPattern string
	sources              []string
}

// New builds a Config directly from rule configurations. It is mostly useful
// in tests and for library callers that do not read configuration files.
func New(rules map[string][]*RuleConfig) *Config {
	cfg := &Config{rules: make(map[string][]*RuleConfig, len(rules))}
	for name, list := range rules {
		cfg.rules[name] = append([]*RuleConfig(nil), list...)
	}
	return cfg
}

// Empty returns a configuration with no rules configured.
func Empty() *Config {
	return New(nil)
}

// Rule returns the configurations of the named rule in declaration order, or
// nil when the rule is not configured.
func (c *Config) Rule(name string) []*RuleConfig {
	return c.rules[name]
}

// Configured reports whether the named rule appears in any source.
func (c *Config) Configured(name string) bool {
	_, ok := c.rules[name]
	return ok
}

// Enabled reports whether at least one configuration of the named rule is enabled.
func (c *Config) Enabled(name string) bool {
	for _, rc := range c.rules[name] {
		if rc.Enabled() {
			return true
		}
	}
	return false
}

// RuleNames returns every configured rule name, sorted. Names without a
// built-in rule are kept so newer configuration files still load.
func (c *Config) RuleNames() []string {
	names := make([]string, 0, len(c.rules))
	for name := range c.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IgnoreContextPattern returns the pattern of changeset contexts to skip, if any.
func (c *Config) IgnoreContextPattern() string {
	return c.ignoreContextPattern
}

// Sources lists the names of the sources the configuration was merged from.
func (c *Config) Sources() []string {
	return append([]string(nil), c.sources...)
}

// Validate checks every pattern once, so a malformed pattern is reported a
// single time for its rule instead of once per checked change.
func (c *Config) Validate() error {
	for _, name := range c.RuleNames() {
		for i, rc := range c.rules[name] {
			if err := pattern.Validate(rc.Pattern(), rc.DynamicValue()); err != nil {
				rule := name
				if len(c.rules[name]) > 1 {
					rule = fmt.Sprintf("%s[%d]", name, i)
				}
				return &Error{Rule: rule, Err: err}
			}
		}
	}
	if err := pattern.Validate(c.ignoreContextPattern, ""); err != nil {
		return &Error{Rule: ignoreContextPatternKey, Err: err}
	}
	return nil
}

// Error is a configuration error. It aborts the run.
type Error struct {
	Source string
	Rule   string
	Err    error
}

func (e *Error) Error() string {
	msg := "configuration error"
	if e.Rule != "" {
		msg += fmt.Sprintf(" in rule %q", e.Rule)
	}
	if e.Source != "" {
		msg += fmt.Sprintf(" (%s)", e.Source)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
