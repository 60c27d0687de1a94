// Package advisor defines the rule contract and dispatches configured rules
// to the parts of a changelog as it is walked.
package advisor

import (
	"fmt"
	"sync"

	"github.com/nsxbet/changelog-linter/pkg/types"
)

// Scope is the kind of subject a rule checks.
type Scope int

const (
	// ScopeGeneric rules check raw values or run outside the document walk.
	ScopeGeneric Scope = iota
	// ScopeChangeLog rules check a whole changelog.
	ScopeChangeLog
	// ScopeChangeSet rules check one changeset.
	ScopeChangeSet
	// ScopeChange rules check one change.
	ScopeChange
	// ScopeColumn rules check one column of a change.
	ScopeColumn
)

func (s Scope) String() string {
	switch s {
	case ScopeGeneric:
		return "generic"
	case ScopeChangeLog:
		return "changelog"
	case ScopeChangeSet:
		return "changeset"
	case ScopeChange:
		return "change"
	case ScopeColumn:
		return "column"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Rule is a named check. A rule takes part in a scope by implementing the
// matching interface below; a rule may implement several of them.
type Rule interface {
	Name() string
	Description() string
}

// ChangeLogRule checks a changelog.
type ChangeLogRule interface {
	Rule
	CheckChangeLog(ctx *Context, changeLog *types.ChangeLog) ([]*Violation, error)
}

// ChangeSetRule checks a changeset.
type ChangeSetRule interface {
	Rule
	CheckChangeSet(ctx *Context, changeSet *types.ChangeSet) ([]*Violation, error)
}

// ChangeRule checks the changes it supports. Unsupported changes are skipped
// without producing anything.
type ChangeRule interface {
	Rule
	Supports(change types.Change) bool
	CheckChange(ctx *Context, change types.Change) ([]*Violation, error)
}

// ColumnRule checks every column of the changes it supports.
type ColumnRule interface {
	Rule
	Supports(change types.Change) bool
	CheckColumn(ctx *Context, change types.Change, column *types.Column) ([]*Violation, error)
}

// ValueRule checks raw values such as schema names found in the document.
type ValueRule interface {
	Rule
	CheckValue(ctx *Context, value string) ([]*Violation, error)
}

// Visited records the changelog locations seen in one run.
type Visited interface {
	// Visit records location and reports whether it had been recorded before.
	Visit(location string) (seen bool)
}

// IncludeRule runs when a changelog is about to be walked, before its
// contents. A non-nil error aborts the run.
type IncludeRule interface {
	Rule
	CheckInclude(ctx *Context, location string, visited Visited) error
}

// Scopes lists the scopes r takes part in.
func Scopes(r Rule) []Scope {
	var scopes []Scope
	if _, ok := r.(IncludeRule); ok {
		scopes = append(scopes, ScopeGeneric)
	} else if _, ok := r.(ValueRule); ok {
		scopes = append(scopes, ScopeGeneric)
	}
	if _, ok := r.(ChangeLogRule); ok {
		scopes = append(scopes, ScopeChangeLog)
	}
	if _, ok := r.(ChangeSetRule); ok {
		scopes = append(scopes, ScopeChangeSet)
	}
	if _, ok := r.(ChangeRule); ok {
		scopes = append(scopes, ScopeChange)
	}
	if _, ok := r.(ColumnRule); ok {
		scopes = append(scopes, ScopeColumn)
	}
	return scopes
}

// Registry holds rules in registration order.
type Registry struct {
	mu     sync.RWMutex
	rules  []Rule
	byName map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Rule)}
}

// Register adds a rule. If Register is called twice with the same name, if
// rule is nil, or if it implements no scope interface, it panics.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rule == nil {
		panic("advisor: Register rule is nil")
	}
	name := rule.Name()
	if _, dup := r.byName[name]; dup {
		panic(fmt.Sprintf("advisor: Register called twice for rule %v", name))
	}
	if len(Scopes(rule)) == 0 {
		panic(fmt.Sprintf("advisor: rule %v implements no scope", name))
	}
	r.byName[name] = rule
	r.rules = append(r.rules, rule)
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Rule(nil), r.rules...)
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

var defaultRegistry = NewRegistry()

// Register makes a rule available in the default registry.
func Register(rule Rule) {
	defaultRegistry.Register(rule)
}

// DefaultRegistry returns the registry built-in rules register into.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
