// Package pattern matches configured naming patterns against values.
//
// Patterns use the JVM regular expression dialect (look-around included), so
// that rule configurations written for the original linter keep working. A
// pattern may contain the {{value}} placeholder, which is replaced by the
// upper-cased value of an attribute of the subject being checked, for example
// "^{{value}}_PK$" with dynamic value "tableName".
//
// Matching is always a full-string match.
package pattern

import (
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

// Placeholder is the token substituted with the dynamic value.
const Placeholder = "{{value}}"

var (
	// ErrNoDynamicValue is returned when a pattern has a placeholder but no
	// dynamic value key is configured.
	ErrNoDynamicValue = errors.New("pattern contains " + Placeholder + " but no dynamic value is configured")

	// ErrUnknownAttribute is returned when the dynamic value key does not name
	// an attribute of the subject.
	ErrUnknownAttribute = errors.New("unknown dynamic value attribute")
)

// Subject supplies dynamic values.
type Subject interface {
	Attribute(name string) (value string, ok bool)
}

// Matcher compiles and caches patterns. It is safe for concurrent use.
type Matcher struct {
	cache sync.Map // anchored pattern -> *regexp2.Regexp
}

// NewMatcher returns an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

var defaultMatcher = NewMatcher()

// Default returns the process wide matcher.
func Default() *Matcher {
	return defaultMatcher
}

// HasPlaceholder reports whether pattern contains the dynamic value placeholder.
func HasPlaceholder(pattern string) bool {
	return strings.Contains(pattern, Placeholder)
}

// Resolve substitutes the placeholder in pattern with the upper-cased value of
// the subject attribute named by dynamicValueKey. Patterns without a placeholder
// are returned unchanged.
func Resolve(pattern, dynamicValueKey string, subject Subject) (string, error) {
	if !HasPlaceholder(pattern) {
		return pattern, nil
	}
	if dynamicValueKey == "" {
		return "", ErrNoDynamicValue
	}
	if subject == nil {
		return "", errors.Wrapf(ErrUnknownAttribute, "%q: subject has no attributes", dynamicValueKey)
	}
	value, ok := subject.Attribute(dynamicValueKey)
	if !ok {
		return "", errors.Wrapf(ErrUnknownAttribute, "%q", dynamicValueKey)
	}
	return strings.ReplaceAll(pattern, Placeholder, strings.ToUpper(value)), nil
}

// Compile compiles a resolved pattern for full-string matching.
func (m *Matcher) Compile(pattern string) (*regexp2.Regexp, error) {
	anchored := `\A(?:` + pattern + `)\z`
	if re, ok := m.cache.Load(anchored); ok {
		return re.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(anchored, regexp2.None)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}
	actual, _ := m.cache.LoadOrStore(anchored, re)
	return actual.(*regexp2.Regexp), nil
}

// MatchString reports whether the whole candidate matches the resolved pattern.
func (m *Matcher) MatchString(pattern, candidate string) (bool, error) {
	re, err := m.Compile(pattern)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(candidate)
	if err != nil {
		return false, errors.Wrapf(err, "matching %q against %q", candidate, pattern)
	}
	return ok, nil
}

// Matches resolves pattern against subject and reports whether candidate matches it.
// It also returns the resolved pattern, which is what violation messages show.
func (m *Matcher) Matches(pattern, dynamicValueKey string, subject Subject, candidate string) (bool, string, error) {
	resolved, err := Resolve(pattern, dynamicValueKey, subject)
	if err != nil {
		return false, "", err
	}
	ok, err := m.MatchString(resolved, candidate)
	if err != nil {
		return false, resolved, err
	}
	return ok, resolved, nil
}

// Matches uses the default matcher.
func Matches(pattern, dynamicValueKey string, subject Subject, candidate string) (bool, error) {
	ok, _, err := defaultMatcher.Matches(pattern, dynamicValueKey, subject, candidate)
	return ok, err
}

// Validate checks that pattern compiles and that a placeholder has a dynamic
// value key. The placeholder is replaced with a neutral identifier so patterns
// that depend on a dynamic value can be checked before any subject is seen.
func Validate(pattern, dynamicValueKey string) error {
	if pattern == "" {
		return nil
	}
	if HasPlaceholder(pattern) && dynamicValueKey == "" {
		return ErrNoDynamicValue
	}
	_, err := defaultMatcher.Compile(strings.ReplaceAll(pattern, Placeholder, "VALUE"))
	return err
}
