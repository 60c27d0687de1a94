package linter

import (
	"github.com/nsxbet/changelog-linter/pkg/advisor"
	"github.com/nsxbet/changelog-linter/pkg/config"
)

// Option is a functional option for customizing a Linter.
type Option func(*Linter)

// WithLoader sets where the effective configuration comes from. The loader
// is consulted once per Lint call and caches its result, so every run of a
// Linter shares one configuration.
//
// Example:
//
//	l := linter.New(linter.WithLoader(config.NewLoader(
//	    append([]config.Source{config.DefaultSource()}, config.Discover(".")...)...,
//	)))
func WithLoader(loader *config.Loader) Option {
	return func(l *Linter) {
		l.loader = loader
	}
}

// WithConfig uses cfg as the effective configuration.
//
// Example:
//
//	cfg := config.New(map[string][]*config.RuleConfig{
//	    "create-table-remarks": {config.NewRuleConfig()},
//	})
//	l := linter.New(linter.WithConfig(cfg))
func WithConfig(cfg *config.Config) Option {
	return WithLoader(config.Static(cfg))
}

// WithRegistry replaces the registry of rules. The default is the advisor's
// default registry, which holds the built-in rules.
func WithRegistry(registry *advisor.Registry) Option {
	return func(l *Linter) {
		l.registry = registry
	}
}

// WithResolver sets how included changelogs that are not already
// materialized are loaded.
func WithResolver(resolver Resolver) Option {
	return func(l *Linter) {
		l.resolver = resolver
	}
}
